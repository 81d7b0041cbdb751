package interaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/testutil"
)

func newTestUseCase() (*InteractionUseCase, *testutil.FakeInteractionRepository, *testutil.FakeMatchRepository, *testutil.FakeProfileRepository) {
	interactionRepo := testutil.NewFakeInteractionRepository()
	matchRepo := testutil.NewFakeMatchRepository()
	profileRepo := testutil.NewFakeProfileRepository()
	uc := NewInteractionUseCase(interactionRepo, matchRepo, profileRepo)
	return uc, interactionRepo, matchRepo, profileRepo
}

func seedProfiles(profileRepo *testutil.FakeProfileRepository, ids ...string) {
	for _, id := range ids {
		profileRepo.Seed(&domain.Profile{ID: id, Name: "user " + id, Age: 25})
	}
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	uc, _, _, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a", "b")
	ctx := context.Background()

	_, err := uc.Record(ctx, "", "b", domain.InteractionLike)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(ctx, "a", "", domain.InteractionLike)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(ctx, "a", "a", domain.InteractionLike)
	assert.ErrorIs(t, err, domain.ErrSelfInteraction)

	_, err = uc.Record(ctx, "a", "b", domain.InteractionType("superlike"))
	assert.ErrorIs(t, err, domain.ErrInvalidInteractionType)
}

func TestRecordRejectsUnknownTarget(t *testing.T) {
	uc, _, _, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a")

	_, err := uc.Record(context.Background(), "a", "ghost", domain.InteractionLike)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRecordOverwritesPreviousJudgment(t *testing.T) {
	uc, interactionRepo, _, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a", "b")
	ctx := context.Background()

	first, err := uc.Record(ctx, "a", "b", domain.InteractionLike)
	require.NoError(t, err)

	second, err := uc.Record(ctx, "a", "b", domain.InteractionDislike)
	require.NoError(t, err)

	assert.Equal(t, first.Interaction.ID, second.Interaction.ID)
	assert.Equal(t, domain.InteractionDislike, second.Interaction.Type)

	stored, err := interactionRepo.Get(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, domain.InteractionDislike, stored.Type)
}

func TestRecordFirstLikeIsNotAMatch(t *testing.T) {
	uc, _, matchRepo, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a", "b")

	result, err := uc.Record(context.Background(), "a", "b", domain.InteractionLike)
	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	assert.Equal(t, 0, matchRepo.Count())
}

func TestRecordMutualLikeCreatesMatch(t *testing.T) {
	uc, _, matchRepo, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a", "b")
	ctx := context.Background()

	_, err := uc.Record(ctx, "b", "a", domain.InteractionLike)
	require.NoError(t, err)

	result, err := uc.Record(ctx, "a", "b", domain.InteractionLike)
	require.NoError(t, err)
	assert.True(t, result.IsMatch)
	assert.Equal(t, 1, matchRepo.Count())

	match, err := matchRepo.GetByUsers(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a", match.User1ID)
	assert.Equal(t, "b", match.User2ID)
}

func TestRecordRepeatedMutualLikeKeepsOneMatch(t *testing.T) {
	uc, _, matchRepo, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a", "b")
	ctx := context.Background()

	_, err := uc.Record(ctx, "b", "a", domain.InteractionLike)
	require.NoError(t, err)
	_, err = uc.Record(ctx, "a", "b", domain.InteractionLike)
	require.NoError(t, err)

	result, err := uc.Record(ctx, "a", "b", domain.InteractionLike)
	require.NoError(t, err)
	assert.True(t, result.IsMatch)
	assert.Equal(t, 1, matchRepo.Count())
}

func TestRecordDislikeAfterReverseLikeIsNotAMatch(t *testing.T) {
	uc, _, matchRepo, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a", "b")
	ctx := context.Background()

	_, err := uc.Record(ctx, "b", "a", domain.InteractionLike)
	require.NoError(t, err)

	result, err := uc.Record(ctx, "a", "b", domain.InteractionDislike)
	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	assert.Equal(t, 0, matchRepo.Count())
}

func TestRecordReportsMatchEvenIfPersistFails(t *testing.T) {
	uc, _, matchRepo, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a", "b")
	ctx := context.Background()

	_, err := uc.Record(ctx, "b", "a", domain.InteractionLike)
	require.NoError(t, err)

	matchRepo.CreateErr = errors.New("connection reset")
	result, err := uc.Record(ctx, "a", "b", domain.InteractionLike)
	require.NoError(t, err)
	assert.True(t, result.IsMatch)
}

func TestListFavoritesRequiresViewerProfile(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.ListFavorites(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestListFavoritesEmptyWithoutLikes(t *testing.T) {
	uc, _, _, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "a")

	favorites, err := uc.ListFavorites(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestListFavoritesScoredAndSorted(t *testing.T) {
	uc, _, _, profileRepo := newTestUseCase()
	profileRepo.Seed(
		&domain.Profile{ID: "viewer", Name: "Viewer", Age: 25, Hobbies: []string{"hiking", "chess"}, SocialLevel: 3},
		&domain.Profile{ID: "close", Name: "Close", Age: 25, Hobbies: []string{"hiking", "chess"}, SocialLevel: 3},
		&domain.Profile{ID: "far", Name: "Far", Age: 45, Hobbies: []string{"opera"}, SocialLevel: 1},
		&domain.Profile{ID: "disliked", Name: "Disliked", Age: 25},
	)
	ctx := context.Background()

	_, err := uc.Record(ctx, "viewer", "far", domain.InteractionLike)
	require.NoError(t, err)
	_, err = uc.Record(ctx, "viewer", "close", domain.InteractionLike)
	require.NoError(t, err)
	_, err = uc.Record(ctx, "viewer", "disliked", domain.InteractionDislike)
	require.NoError(t, err)

	favorites, err := uc.ListFavorites(ctx, "viewer")
	require.NoError(t, err)
	require.Len(t, favorites, 2)

	assert.Equal(t, "close", favorites[0].ID)
	assert.Equal(t, "far", favorites[1].ID)
	assert.Greater(t, favorites[0].MatchPercentage, favorites[1].MatchPercentage)
	for _, fav := range favorites {
		require.NotNil(t, fav.InteractionStatus)
		assert.Equal(t, domain.InteractionLike, *fav.InteractionStatus)
	}
}

func TestListMatchesReturnsOnlyMutualLikes(t *testing.T) {
	uc, _, _, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "viewer", "mutual", "one-way")
	ctx := context.Background()

	_, err := uc.Record(ctx, "viewer", "mutual", domain.InteractionLike)
	require.NoError(t, err)
	_, err = uc.Record(ctx, "mutual", "viewer", domain.InteractionLike)
	require.NoError(t, err)
	_, err = uc.Record(ctx, "viewer", "one-way", domain.InteractionLike)
	require.NoError(t, err)

	matches, err := uc.ListMatches(ctx, "viewer")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "mutual", matches[0].ID)
}

func TestListMatchesEmptyWithoutMatches(t *testing.T) {
	uc, _, _, profileRepo := newTestUseCase()
	seedProfiles(profileRepo, "viewer")

	matches, err := uc.ListMatches(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
