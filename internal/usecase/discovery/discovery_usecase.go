// Package discovery produces the ranked list of people a viewer has not yet
// judged.
package discovery

import (
	"context"
	"fmt"
	"sort"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/logger"
	"github.com/linkupge/linkup-backend/internal/matching"
	"github.com/linkupge/linkup-backend/internal/repository"
)

// candidatePageSize bounds the profile fetch; the original client pulled at
// most 100 rows per selection and filtered locally.
const candidatePageSize = 100

// Defaults backfilled into sparse profiles so the scorer and clients never
// see absent required fields. The placeholder strings match the ones the
// Georgian-language frontend renders.
const (
	defaultName        = "ანონიმური მომხმარებელი"
	defaultBio         = "ბიოგრაფია არ არის მითითებული"
	defaultAge         = 25
	defaultSocialLevel = 3
)

type DiscoveryUseCase struct {
	profileRepo     repository.ProfileRepository
	interactionRepo repository.InteractionRepository
}

func NewDiscoveryUseCase(
	profileRepo repository.ProfileRepository,
	interactionRepo repository.InteractionRepository,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
	}
}

// SelectCandidates returns the viewer's not-yet-judged candidates, scored
// against the viewer's profile and sorted by match percentage descending
// (ties broken by newest profile first).
//
// Filtering follows the quality-preferred-but-never-empty policy: the strict
// pass keeps profiles with a real name or a plausible age, and only when
// that pass removes everything does a loose pass (any non-empty id) run, so
// sparse data never empties the feed on its own.
func (uc *DiscoveryUseCase) SelectCandidates(ctx context.Context, viewerID string) ([]*domain.ScoredProfile, error) {
	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		if err == domain.ErrProfileNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	interactions, err := uc.interactionRepo.ListByActor(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interaction history: %w", err)
	}

	judged := make(map[string]struct{}, len(interactions))
	for _, interaction := range interactions {
		judged[interaction.TargetUserID] = struct{}{}
	}

	profiles, err := uc.profileRepo.List(ctx, viewerID, candidatePageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate profiles: %w", err)
	}

	var unjudged []*domain.Profile
	for _, profile := range profiles {
		if _, ok := judged[profile.ID]; ok {
			continue
		}
		unjudged = append(unjudged, profile)
	}

	candidates := applyValidityFilter(unjudged)

	scored := make([]*domain.ScoredProfile, 0, len(candidates))
	for _, candidate := range candidates {
		// Score against the raw profile, then backfill display defaults;
		// a missing age must earn partial credit, not credit for age 25.
		percentage := scoreCandidate(viewer, candidate)
		backfillDefaults(candidate)
		scored = append(scored, &domain.ScoredProfile{
			Profile:           *candidate,
			MatchPercentage:   percentage,
			InteractionStatus: nil,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchPercentage != scored[j].MatchPercentage {
			return scored[i].MatchPercentage > scored[j].MatchPercentage
		}
		return scored[i].CreatedAt.After(scored[j].CreatedAt)
	})

	return scored, nil
}

// applyValidityFilter implements the two-tier fallback: strict first, loose
// when strict leaves nothing.
func applyValidityFilter(profiles []*domain.Profile) []*domain.Profile {
	var valid []*domain.Profile
	for _, profile := range profiles {
		if profile.Name != "" || profile.HasPlausibleAge() {
			valid = append(valid, profile)
		}
	}
	if len(valid) > 0 {
		return valid
	}

	logger.Debug("strict candidate filter left no profiles, applying loose filter")
	var loose []*domain.Profile
	for _, profile := range profiles {
		if profile.ID != "" {
			loose = append(loose, profile)
		}
	}
	return loose
}

func backfillDefaults(profile *domain.Profile) {
	if profile.Name == "" {
		profile.Name = defaultName
	}
	if profile.Age == 0 {
		profile.Age = defaultAge
	}
	if profile.Bio == nil {
		bio := defaultBio
		profile.Bio = &bio
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
	if profile.SocialLevel == 0 {
		profile.SocialLevel = defaultSocialLevel
	}
}

// scoreCandidate isolates a per-candidate scoring failure to that candidate,
// falling back to the floor instead of failing the whole batch.
func scoreCandidate(viewer, candidate *domain.Profile) (score int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("match scoring failed for candidate", "candidate_id", candidate.ID, "panic", r)
			score = matching.MinScore
		}
	}()
	return matching.Score(viewer, candidate)
}
