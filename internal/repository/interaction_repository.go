package repository

import (
	"context"

	"github.com/linkupge/linkup-backend/internal/domain"
)

type InteractionRepository interface {
	// Upsert inserts the directed edge or overwrites the type of an
	// existing edge for the same (user, target) pair.
	Upsert(ctx context.Context, interaction *domain.Interaction) error
	Get(ctx context.Context, userID, targetUserID string) (*domain.Interaction, error)
	ListByActor(ctx context.Context, userID string) ([]*domain.Interaction, error)
	ListLikesByActor(ctx context.Context, userID string) ([]*domain.Interaction, error)
}
