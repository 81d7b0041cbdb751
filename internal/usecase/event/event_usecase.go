package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/repository"
)

type EventUseCase struct {
	eventRepo repository.EventRepository
}

func NewEventUseCase(eventRepo repository.EventRepository) *EventUseCase {
	return &EventUseCase{eventRepo: eventRepo}
}

// CreateEventRequest represents event creation
type CreateEventRequest struct {
	Title           string  `json:"title" binding:"required,min=3,max=150"`
	Description     string  `json:"description" binding:"required,max=2000"`
	Date            string  `json:"date" binding:"required,eventdate"`
	Time            string  `json:"time" binding:"required"`
	Location        string  `json:"location" binding:"required,max=200"`
	Category        string  `json:"category" binding:"required,max=50"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,min=2,max=1000"`
	ImageURL        *string `json:"image_url" binding:"omitempty,url"`
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=3,max=150"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	Date            *string `json:"date" binding:"omitempty,eventdate"`
	Time            *string `json:"time"`
	Location        *string `json:"location" binding:"omitempty,max=200"`
	Category        *string `json:"category" binding:"omitempty,max=50"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,min=2,max=1000"`
	ImageURL        *string `json:"image_url" binding:"omitempty,url"`
}

// EventResponse is an event with participation info for the caller.
type EventResponse struct {
	*domain.Event
	ParticipantCount int  `json:"participant_count"`
	IsJoined         bool `json:"is_joined"`
}

func parseEventDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return date, nil
}

func (uc *EventUseCase) Create(ctx context.Context, creatorID string, req *CreateEventRequest) (*domain.Event, error) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		EventDate:       date,
		EventTime:       req.Time,
		Location:        req.Location,
		Category:        req.Category,
		MaxParticipants: req.MaxParticipants,
		ImageURL:        req.ImageURL,
		CreatedBy:       creatorID,
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// List returns all events ordered by date, annotated for the viewer.
func (uc *EventUseCase) List(ctx context.Context, viewerID string) ([]*EventResponse, error) {
	events, err := uc.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]*EventResponse, 0, len(events))
	for _, event := range events {
		response, err := uc.annotate(ctx, event, viewerID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (uc *EventUseCase) GetByID(ctx context.Context, eventID, viewerID string) (*EventResponse, error) {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return uc.annotate(ctx, event, viewerID)
}

// Update applies the provided fields. Only the creator may update.
func (uc *EventUseCase) Update(ctx context.Context, eventID, callerID string, req *UpdateEventRequest) (*domain.Event, error) {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != callerID {
		return nil, domain.ErrNotEventOwner
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.EventDate = date
	}
	if req.Time != nil {
		event.EventTime = *req.Time
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.MaxParticipants != nil {
		event.MaxParticipants = req.MaxParticipants
	}
	if req.ImageURL != nil {
		event.ImageURL = req.ImageURL
	}

	if err := uc.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// Delete removes an event. Only the creator may delete.
func (uc *EventUseCase) Delete(ctx context.Context, eventID, callerID string) error {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatedBy != callerID {
		return domain.ErrNotEventOwner
	}
	return uc.eventRepo.Delete(ctx, eventID)
}

// Join adds the caller as a participant, enforcing capacity when the event
// declares one.
func (uc *EventUseCase) Join(ctx context.Context, eventID, userID string) error {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if event.MaxParticipants != nil {
		count, err := uc.eventRepo.CountParticipants(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to count participants: %w", err)
		}
		if count >= *event.MaxParticipants {
			return domain.ErrEventFull
		}
	}

	return uc.eventRepo.AddParticipant(ctx, eventID, userID)
}

func (uc *EventUseCase) Leave(ctx context.Context, eventID, userID string) error {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}
	return uc.eventRepo.RemoveParticipant(ctx, eventID, userID)
}

func (uc *EventUseCase) Participants(ctx context.Context, eventID string) ([]*domain.EventParticipant, error) {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return uc.eventRepo.ListParticipants(ctx, eventID)
}

func (uc *EventUseCase) annotate(ctx context.Context, event *domain.Event, viewerID string) (*EventResponse, error) {
	count, err := uc.eventRepo.CountParticipants(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	joined, err := uc.eventRepo.IsParticipant(ctx, event.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participation: %w", err)
	}
	return &EventResponse{
		Event:            event,
		ParticipantCount: count,
		IsJoined:         joined,
	}, nil
}
