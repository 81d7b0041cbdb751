package profile

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/testutil"
)

type fakeStorage struct {
	saved   map[string]string
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string]string)}
}

func (s *fakeStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.saved[filename] = string(data)
	return "/uploads/" + filename, nil
}

func newTestUseCase() (*ProfileUseCase, *testutil.FakeProfileRepository, *fakeStorage) {
	profileRepo := testutil.NewFakeProfileRepository()
	storage := newFakeStorage()
	uc := NewProfileUseCase(profileRepo, storage, nil)
	return uc, profileRepo, storage
}

func upsertRequest() *UpsertProfileRequest {
	return &UpsertProfileRequest{
		Name:        "  Nino  ",
		Age:         27,
		Hobbies:     []string{"hiking", "photography"},
		SocialLevel: 4,
	}
}

func TestUpsertProfileNormalizes(t *testing.T) {
	uc, _, _ := newTestUseCase()

	profile, err := uc.UpsertProfile(context.Background(), "u1", upsertRequest())
	require.NoError(t, err)

	assert.Equal(t, "Nino", profile.Name)
	assert.True(t, profile.IsOnboardingComplete)
	assert.NotNil(t, profile.Availability)
	assert.NotNil(t, profile.Personality)
}

func TestUpsertProfileKeepsImageURL(t *testing.T) {
	uc, profileRepo, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.UpsertProfile(ctx, "u1", upsertRequest())
	require.NoError(t, err)
	require.NoError(t, profileRepo.UpdateImageURL(ctx, "u1", "/uploads/u1.jpg"))

	updated, err := uc.UpsertProfile(ctx, "u1", upsertRequest())
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, "/uploads/u1.jpg", *updated.ImageURL)
}

func TestUploadImageValidatesSizeAndType(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.UploadImage(ctx, "u1", "me.jpg", maxImageSize+1, strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)

	_, err = uc.UploadImage(ctx, "u1", "me.gif", 100, strings.NewReader("gif"))
	assert.ErrorIs(t, err, domain.ErrInvalidImageType)

	_, err = uc.UploadImage(ctx, "u1", "me", 100, strings.NewReader("raw"))
	assert.ErrorIs(t, err, domain.ErrInvalidImageType)
}

func TestUploadImageRequiresProfile(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.UploadImage(context.Background(), "ghost", "me.jpg", 100, strings.NewReader("jpg"))
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUploadImageStoresAndLinks(t *testing.T) {
	uc, _, storage := newTestUseCase()
	ctx := context.Background()

	_, err := uc.UpsertProfile(ctx, "u1", upsertRequest())
	require.NoError(t, err)

	url, err := uc.UploadImage(ctx, "u1", "me.PNG", 4, strings.NewReader("data"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/u1-"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Len(t, storage.saved, 1)

	profile, err := uc.GetMyProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, profile.ImageURL)
	assert.Equal(t, url, *profile.ImageURL)
}

func TestSuggestBioWithoutClient(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.SuggestBio(context.Background(), &SuggestBioRequest{
		Name:    "Nino",
		Hobbies: []string{"hiking"},
	})
	assert.Error(t, err)
}
