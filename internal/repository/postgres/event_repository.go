package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/repository"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (
			id, title, description, event_date, event_time, location,
			category, max_participants, image_url, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		event.ID, event.Title, event.Description, event.EventDate,
		event.EventTime, event.Location, event.Category,
		event.MaxParticipants, event.ImageURL, event.CreatedBy,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var event domain.Event
	query := `SELECT * FROM events WHERE id = $1`
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	var events []*domain.Event
	query := `SELECT * FROM events ORDER BY event_date ASC, event_time ASC`
	err := r.db.SelectContext(ctx, &events, query)
	return events, err
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, event_date = $3, event_time = $4,
		    location = $5, category = $6, max_participants = $7, image_url = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.Title, event.Description, event.EventDate, event.EventTime,
		event.Location, event.Category, event.MaxParticipants, event.ImageURL,
		event.ID,
	).Scan(&event.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	return err
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	query := `
		INSERT INTO event_participants (event_id, user_id)
		VALUES ($1, $2)
	`
	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrAlreadyJoined
		}
		return err
	}
	return nil
}

func (r *eventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotJoined
	}
	return nil
}

func (r *eventRepository) ListParticipants(ctx context.Context, eventID string) ([]*domain.EventParticipant, error) {
	var participants []*domain.EventParticipant
	query := `
		SELECT id, event_id, user_id, joined_at
		FROM event_participants
		WHERE event_id = $1
		ORDER BY joined_at ASC
	`
	err := r.db.SelectContext(ctx, &participants, query, eventID)
	return participants, err
}

func (r *eventRepository) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, eventID, userID)
	return exists, err
}

func (r *eventRepository) CountParticipants(ctx context.Context, eventID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM event_participants WHERE event_id = $1`
	err := r.db.GetContext(ctx, &count, query, eventID)
	return count, err
}
