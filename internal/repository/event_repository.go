package repository

import (
	"context"

	"github.com/linkupge/linkup-backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns all events ordered by event date ascending.
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error

	AddParticipant(ctx context.Context, eventID, userID string) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
	ListParticipants(ctx context.Context, eventID string) ([]*domain.EventParticipant, error)
	IsParticipant(ctx context.Context, eventID, userID string) (bool, error)
	CountParticipants(ctx context.Context, eventID string) (int, error)
}
