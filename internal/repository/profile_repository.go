package repository

import (
	"context"

	"github.com/linkupge/linkup-backend/internal/domain"
)

type ProfileRepository interface {
	// Upsert creates the profile or replaces an existing one keyed by id.
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	// List returns up to limit profiles excluding excludeID, newest first.
	List(ctx context.Context, excludeID string, limit int) ([]*domain.Profile, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error)
	UpdateImageURL(ctx context.Context, id string, imageURL string) error
}
