package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/repository"
)

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Upsert(ctx context.Context, interaction *domain.Interaction) error {
	query := `
		INSERT INTO interactions (user_id, target_user_id, interaction_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, target_user_id) DO UPDATE SET
			interaction_type = EXCLUDED.interaction_type,
			created_at = CURRENT_TIMESTAMP
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		interaction.UserID, interaction.TargetUserID, interaction.Type,
	).Scan(&interaction.ID, &interaction.CreatedAt)
}

func (r *interactionRepository) Get(ctx context.Context, userID, targetUserID string) (*domain.Interaction, error) {
	var interaction domain.Interaction
	query := `
		SELECT id, user_id, target_user_id, interaction_type, created_at
		FROM interactions
		WHERE user_id = $1 AND target_user_id = $2
	`
	err := r.db.GetContext(ctx, &interaction, query, userID, targetUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, err
	}
	return &interaction, nil
}

func (r *interactionRepository) ListByActor(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	var interactions []*domain.Interaction
	query := `
		SELECT id, user_id, target_user_id, interaction_type, created_at
		FROM interactions
		WHERE user_id = $1
	`
	err := r.db.SelectContext(ctx, &interactions, query, userID)
	return interactions, err
}

func (r *interactionRepository) ListLikesByActor(ctx context.Context, userID string) ([]*domain.Interaction, error) {
	var interactions []*domain.Interaction
	query := `
		SELECT id, user_id, target_user_id, interaction_type, created_at
		FROM interactions
		WHERE user_id = $1 AND interaction_type = $2
	`
	err := r.db.SelectContext(ctx, &interactions, query, userID, domain.InteractionLike)
	return interactions, err
}
