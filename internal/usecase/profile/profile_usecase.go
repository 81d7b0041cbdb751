package profile

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/infrastructure/gemini"
	"github.com/linkupge/linkup-backend/internal/repository"
)

// maxImageSize caps profile image uploads at 5 MB.
const maxImageSize = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageStorage persists uploaded profile images and returns a public URL.
type ImageStorage interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}

type ProfileUseCase struct {
	profileRepo  repository.ProfileRepository
	storage      ImageStorage
	geminiClient *gemini.Client
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	storage ImageStorage,
	geminiClient *gemini.Client,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:  profileRepo,
		storage:      storage,
		geminiClient: geminiClient,
	}
}

// UpsertProfileRequest carries the full profile state; saving replaces any
// existing profile for the user, matching the original client's upsert
// semantics.
type UpsertProfileRequest struct {
	Name             string            `json:"name" binding:"required,min=1,max=100"`
	Age              int               `json:"age" binding:"required,min=16,max=100"`
	Bio              *string           `json:"bio" binding:"omitempty,max=500"`
	InstagramProfile *string           `json:"instagram_profile" binding:"omitempty,max=100"`
	Hobbies          []string          `json:"hobbies" binding:"omitempty,max=20"`
	Availability     []string          `json:"availability" binding:"omitempty,max=10"`
	Personality      map[string]string `json:"personality"`
	SocialLevel      int               `json:"social_level" binding:"required,min=1,max=5"`
}

// GetMyProfile returns the caller's own profile.
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// GetProfileByID returns another user's profile.
func (uc *ProfileUseCase) GetProfileByID(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// UpsertProfile creates or replaces the profile for userID. Completing this
// call marks onboarding as done.
func (uc *ProfileUseCase) UpsertProfile(ctx context.Context, userID string, req *UpsertProfileRequest) (*domain.Profile, error) {
	// Carry the existing image forward; it is managed by UploadImage.
	var imageURL *string
	if existing, err := uc.profileRepo.GetByID(ctx, userID); err == nil {
		imageURL = existing.ImageURL
	}

	profile := &domain.Profile{
		ID:                   userID,
		Name:                 strings.TrimSpace(req.Name),
		Age:                  req.Age,
		Bio:                  req.Bio,
		InstagramProfile:     req.InstagramProfile,
		ImageURL:             imageURL,
		Hobbies:              req.Hobbies,
		Availability:         req.Availability,
		Personality:          req.Personality,
		SocialLevel:          req.SocialLevel,
		IsOnboardingComplete: true,
	}
	if profile.Hobbies == nil {
		profile.Hobbies = []string{}
	}
	if profile.Availability == nil {
		profile.Availability = []string{}
	}
	if profile.Personality == nil {
		profile.Personality = domain.PersonalityMap{}
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return profile, nil
}

// UploadImage validates and stores a profile image, then points the profile
// at its public URL. Filenames are uuid-based so re-uploads never collide.
func (uc *ProfileUseCase) UploadImage(ctx context.Context, userID, originalFilename string, size int64, content io.Reader) (string, error) {
	if size > maxImageSize {
		return "", domain.ErrImageTooLarge
	}

	ext := strings.ToLower(path.Ext(originalFilename))
	if !allowedImageExtensions[ext] {
		return "", domain.ErrInvalidImageType
	}

	if _, err := uc.profileRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%d-%s%s", userID, time.Now().Unix(), uuid.NewString()[:8], ext)
	url, err := uc.storage.Save(ctx, filename, io.LimitReader(content, maxImageSize))
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	if err := uc.profileRepo.UpdateImageURL(ctx, userID, url); err != nil {
		return "", fmt.Errorf("failed to update profile image: %w", err)
	}

	return url, nil
}

// SuggestBioRequest carries the fields the bio generator works from.
type SuggestBioRequest struct {
	Name    string   `json:"name" binding:"required"`
	Hobbies []string `json:"hobbies" binding:"required,min=1"`
}

// SuggestBio asks the AI client for bio drafts. Unavailable when the service
// runs without an API key.
func (uc *ProfileUseCase) SuggestBio(ctx context.Context, req *SuggestBioRequest) ([]string, error) {
	if uc.geminiClient == nil {
		return nil, fmt.Errorf("bio suggestions are not available")
	}
	return uc.geminiClient.GenerateBios(ctx, req.Name, req.Hobbies)
}
