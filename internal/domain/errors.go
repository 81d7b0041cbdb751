package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")

	ErrProfileNotFound = errors.New("profile not found")

	ErrInvalidInput           = errors.New("invalid input")
	ErrSelfInteraction        = errors.New("cannot interact with yourself")
	ErrInvalidInteractionType = errors.New("invalid interaction type")
	ErrInteractionNotFound    = errors.New("interaction not found")

	ErrMatchNotFound = errors.New("match not found")

	ErrEventNotFound    = errors.New("event not found")
	ErrNotEventOwner    = errors.New("only the event creator can modify it")
	ErrEventFull        = errors.New("event is full")
	ErrAlreadyJoined    = errors.New("already joined this event")
	ErrNotJoined        = errors.New("not a participant of this event")
	ErrInvalidImageType = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image exceeds maximum size")
)
