package repository

import (
	"context"

	"github.com/linkupge/linkup-backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Match, error)
}
