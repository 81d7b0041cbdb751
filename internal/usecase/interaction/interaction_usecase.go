// Package interaction records like/dislike judgments, detects mutual
// matches, and serves the favorites and matches views.
package interaction

import (
	"context"
	"fmt"
	"sort"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/logger"
	"github.com/linkupge/linkup-backend/internal/matching"
	"github.com/linkupge/linkup-backend/internal/repository"
)

type InteractionUseCase struct {
	interactionRepo repository.InteractionRepository
	matchRepo       repository.MatchRepository
	profileRepo     repository.ProfileRepository
}

func NewInteractionUseCase(
	interactionRepo repository.InteractionRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
) *InteractionUseCase {
	return &InteractionUseCase{
		interactionRepo: interactionRepo,
		matchRepo:       matchRepo,
		profileRepo:     profileRepo,
	}
}

// RecordResult reports the outcome of a recorded judgment.
type RecordResult struct {
	Interaction *domain.Interaction `json:"interaction"`
	IsMatch     bool                `json:"is_match"`
}

// Record upserts the directed (actor, target) edge. Re-recording the same
// pair overwrites the previous type, so the stored state is idempotent with
// respect to repeats. On a like it checks the reverse edge and, when both
// directions are likes, persists the match row itself; a failed reverse
// lookup degrades to "no match" rather than failing the call.
func (uc *InteractionUseCase) Record(ctx context.Context, actorID, targetID string, interactionType domain.InteractionType) (*RecordResult, error) {
	if actorID == "" || targetID == "" || interactionType == "" {
		return nil, domain.ErrInvalidInput
	}
	if actorID == targetID {
		return nil, domain.ErrSelfInteraction
	}
	if !interactionType.IsValid() {
		return nil, domain.ErrInvalidInteractionType
	}

	if _, err := uc.profileRepo.GetByID(ctx, targetID); err != nil {
		if err == domain.ErrProfileNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to check target profile: %w", err)
	}

	interaction := &domain.Interaction{
		UserID:       actorID,
		TargetUserID: targetID,
		Type:         interactionType,
	}
	if err := uc.interactionRepo.Upsert(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to save interaction: %w", err)
	}

	result := &RecordResult{Interaction: interaction}

	if interactionType == domain.InteractionLike {
		result.IsMatch = uc.detectAndPersistMatch(ctx, actorID, targetID)
	}

	return result, nil
}

// detectAndPersistMatch looks up the reverse edge and, on mutual like,
// writes the match row. Detection is best effort: any failure here leaves
// the recorded interaction intact and reports no match.
func (uc *InteractionUseCase) detectAndPersistMatch(ctx context.Context, actorID, targetID string) bool {
	reverse, err := uc.interactionRepo.Get(ctx, targetID, actorID)
	if err != nil {
		if err != domain.ErrInteractionNotFound {
			logger.Warn("reverse edge lookup failed", "actor_id", actorID, "target_id", targetID, "error", err)
		}
		return false
	}
	if reverse.Type != domain.InteractionLike {
		return false
	}

	match := &domain.Match{User1ID: actorID, User2ID: targetID}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		logger.Error("failed to persist match", "actor_id", actorID, "target_id", targetID, "error", err)
		// The mutual like is real even if the row write failed; report it.
	}
	return true
}

// ListFavorites returns the profiles the viewer has liked, freshly scored
// against the viewer's current profile and sorted by match percentage
// descending. No liked edges is a successful empty result.
func (uc *InteractionUseCase) ListFavorites(ctx context.Context, viewerID string) ([]*domain.ScoredProfile, error) {
	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		if err == domain.ErrProfileNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	likes, err := uc.interactionRepo.ListLikesByActor(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	if len(likes) == 0 {
		return []*domain.ScoredProfile{}, nil
	}

	ids := make([]string, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.TargetUserID)
	}

	return uc.scoreProfilesByIDs(ctx, viewer, ids)
}

// ListMatches returns the profiles in a confirmed match with the viewer,
// scored and sorted the same way as favorites.
func (uc *InteractionUseCase) ListMatches(ctx context.Context, viewerID string) ([]*domain.ScoredProfile, error) {
	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		if err == domain.ErrProfileNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	matches, err := uc.matchRepo.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	if len(matches) == 0 {
		return []*domain.ScoredProfile{}, nil
	}

	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		if otherID, ok := match.OtherUserID(viewerID); ok {
			ids = append(ids, otherID)
		}
	}

	return uc.scoreProfilesByIDs(ctx, viewer, ids)
}

func (uc *InteractionUseCase) scoreProfilesByIDs(ctx context.Context, viewer *domain.Profile, ids []string) ([]*domain.ScoredProfile, error) {
	profiles, err := uc.profileRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	liked := domain.InteractionLike
	scored := make([]*domain.ScoredProfile, 0, len(profiles))
	for _, profile := range profiles {
		scored = append(scored, &domain.ScoredProfile{
			Profile:           *profile,
			MatchPercentage:   matching.Score(viewer, profile),
			InteractionStatus: &liked,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchPercentage > scored[j].MatchPercentage
	})

	return scored, nil
}
