package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/testutil"
)

func newTestUseCase() (*DiscoveryUseCase, *testutil.FakeProfileRepository, *testutil.FakeInteractionRepository) {
	profileRepo := testutil.NewFakeProfileRepository()
	interactionRepo := testutil.NewFakeInteractionRepository()
	uc := NewDiscoveryUseCase(profileRepo, interactionRepo)
	return uc, profileRepo, interactionRepo
}

func TestSelectCandidatesRequiresViewerProfile(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.SelectCandidates(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestSelectCandidatesExcludesViewerAndJudged(t *testing.T) {
	uc, profileRepo, interactionRepo := newTestUseCase()
	profileRepo.Seed(
		&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25},
		&domain.Profile{ID: "liked", Name: "Liked", Age: 25},
		&domain.Profile{ID: "disliked", Name: "Disliked", Age: 25},
		&domain.Profile{ID: "fresh", Name: "Fresh", Age: 25},
	)
	ctx := context.Background()
	require.NoError(t, interactionRepo.Upsert(ctx, &domain.Interaction{
		UserID: "viewer", TargetUserID: "liked", Type: domain.InteractionLike,
	}))
	require.NoError(t, interactionRepo.Upsert(ctx, &domain.Interaction{
		UserID: "viewer", TargetUserID: "disliked", Type: domain.InteractionDislike,
	}))

	candidates, err := uc.SelectCandidates(ctx, "viewer")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "fresh", candidates[0].ID)
	assert.Nil(t, candidates[0].InteractionStatus)
}

func TestSelectCandidatesSortedByScoreThenRecency(t *testing.T) {
	uc, profileRepo, _ := newTestUseCase()
	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now()
	profileRepo.Seed(
		&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25, Hobbies: []string{"hiking"}, SocialLevel: 3},
		&domain.Profile{ID: "best", Name: "Best", Age: 25, Hobbies: []string{"hiking"}, SocialLevel: 3, CreatedAt: old},
		&domain.Profile{ID: "worst", Name: "Worst", Age: 45, Hobbies: []string{"opera"}, SocialLevel: 1, CreatedAt: old},
		&domain.Profile{ID: "tie-old", Name: "Tie Old", Age: 25, Hobbies: []string{"hiking"}, SocialLevel: 3, CreatedAt: old},
		&domain.Profile{ID: "tie-new", Name: "Tie New", Age: 25, Hobbies: []string{"hiking"}, SocialLevel: 3, CreatedAt: recent},
	)

	candidates, err := uc.SelectCandidates(context.Background(), "viewer")
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	assert.Equal(t, "worst", candidates[3].ID)
	assert.Equal(t, "tie-new", candidates[0].ID)
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].MatchPercentage, candidates[i].MatchPercentage)
	}
}

func TestSelectCandidatesStrictFilterDropsEmptyProfiles(t *testing.T) {
	uc, profileRepo, _ := newTestUseCase()
	profileRepo.Seed(
		&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25},
		&domain.Profile{ID: "named", Name: "Named"},
		&domain.Profile{ID: "aged", Age: 30},
		&domain.Profile{ID: "blank"},
	)

	candidates, err := uc.SelectCandidates(context.Background(), "viewer")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	ids := []string{candidates[0].ID, candidates[1].ID}
	assert.Contains(t, ids, "named")
	assert.Contains(t, ids, "aged")
}

func TestSelectCandidatesLooseFallbackKeepsFeedNonEmpty(t *testing.T) {
	uc, profileRepo, _ := newTestUseCase()
	profileRepo.Seed(
		&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25},
		&domain.Profile{ID: "blank-1"},
		&domain.Profile{ID: "blank-2"},
	)

	candidates, err := uc.SelectCandidates(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestSelectCandidatesImplausibleAgeDoesNotPassStrictFilter(t *testing.T) {
	uc, profileRepo, _ := newTestUseCase()
	profileRepo.Seed(
		&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25},
		&domain.Profile{ID: "named", Name: "Named"},
		&domain.Profile{ID: "toddler", Age: 3},
	)

	candidates, err := uc.SelectCandidates(context.Background(), "viewer")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "named", candidates[0].ID)
}

func TestSelectCandidatesBackfillsDisplayDefaults(t *testing.T) {
	uc, profileRepo, _ := newTestUseCase()
	profileRepo.Seed(
		&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25},
		&domain.Profile{ID: "sparse", Name: "Sparse"},
	)

	candidates, err := uc.SelectCandidates(context.Background(), "viewer")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	sparse := candidates[0]
	assert.Equal(t, "Sparse", sparse.Name)
	assert.Equal(t, defaultAge, sparse.Age)
	require.NotNil(t, sparse.Bio)
	assert.Equal(t, defaultBio, *sparse.Bio)
	assert.NotNil(t, sparse.Hobbies)
	assert.NotNil(t, sparse.Availability)
	assert.NotNil(t, sparse.Personality)
	assert.Equal(t, defaultSocialLevel, sparse.SocialLevel)
}

func TestSelectCandidatesScoresRawProfileNotDefaults(t *testing.T) {
	uc, profileRepo, _ := newTestUseCase()
	profileRepo.Seed(
		// Viewer age 25 matches the display default exactly, so a missing
		// candidate age scores differently from a backfilled one.
		&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25},
		&domain.Profile{ID: "ageless", Name: "Ageless"},
	)

	candidates, err := uc.SelectCandidates(context.Background(), "viewer")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	// Partial age credit (10), not the full 20 an age-25 candidate earns.
	assert.Equal(t, 15, candidates[0].MatchPercentage)
	assert.Equal(t, defaultAge, candidates[0].Age)
}

func TestSelectCandidatesEmptyPoolYieldsEmptyFeed(t *testing.T) {
	uc, profileRepo, _ := newTestUseCase()
	profileRepo.Seed(&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25})

	candidates, err := uc.SelectCandidates(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
