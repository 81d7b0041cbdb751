// Package matching computes the compatibility percentage between two
// profiles. The score is deterministic and side-effect free so it can be
// recomputed on every read instead of being cached at interaction time.
package matching

import (
	"math"

	"github.com/linkupge/linkup-backend/internal/domain"
)

const (
	// MinScore and MaxScore bound every result, including the no-data case.
	MinScore = 15
	MaxScore = 95

	ageWeight          = 20
	hobbiesWeight      = 30
	availabilityWeight = 25
	socialWeight       = 25

	agePartial          = 10
	hobbiesPartial      = 15
	availabilityPartial = 12
	socialPartial       = 12
)

// Score returns the compatibility percentage for a (viewer, candidate) pair.
//
// Four factors contribute: age proximity, shared hobbies, shared
// availability, and social-level closeness. A factor present on only one
// side earns flat partial credit while its full weight still counts; a
// factor absent on both sides is skipped. When nothing was evaluated the
// score falls back to MinScore. Fractions round half up.
func Score(viewer, candidate *domain.Profile) int {
	score := 0.0
	totalFactors := 0

	// Age proximity
	if viewer.Age > 0 && candidate.Age > 0 {
		diff := absInt(viewer.Age - candidate.Age)
		switch {
		case diff <= 2:
			score += 20
		case diff <= 5:
			score += 15
		case diff <= 10:
			score += 10
		case diff <= 15:
			score += 5
		}
		totalFactors += ageWeight
	} else if viewer.Age > 0 || candidate.Age > 0 {
		score += agePartial
		totalFactors += ageWeight
	}

	// Shared hobbies
	if len(viewer.Hobbies) > 0 && len(candidate.Hobbies) > 0 {
		shared := intersectionSize(viewer.Hobbies, candidate.Hobbies)
		larger := maxInt(len(viewer.Hobbies), len(candidate.Hobbies))
		score += float64(shared) / float64(larger) * hobbiesWeight
		totalFactors += hobbiesWeight
	} else if len(viewer.Hobbies) > 0 || len(candidate.Hobbies) > 0 {
		score += hobbiesPartial
		totalFactors += hobbiesWeight
	}

	// Shared availability
	if len(viewer.Availability) > 0 && len(candidate.Availability) > 0 {
		shared := intersectionSize(viewer.Availability, candidate.Availability)
		larger := maxInt(len(viewer.Availability), len(candidate.Availability))
		score += float64(shared) / float64(larger) * availabilityWeight
		totalFactors += availabilityWeight
	} else if len(viewer.Availability) > 0 || len(candidate.Availability) > 0 {
		score += availabilityPartial
		totalFactors += availabilityWeight
	}

	// Social-level closeness
	if viewer.SocialLevel > 0 && candidate.SocialLevel > 0 {
		diff := absInt(viewer.SocialLevel - candidate.SocialLevel)
		switch diff {
		case 0:
			score += 25
		case 1:
			score += 20
		case 2:
			score += 15
		case 3:
			score += 10
		default:
			score += 5
		}
		totalFactors += socialWeight
	} else if viewer.SocialLevel > 0 || candidate.SocialLevel > 0 {
		score += socialPartial
		totalFactors += socialWeight
	}

	percentage := MinScore
	if totalFactors > 0 {
		percentage = roundHalfUp(score)
	}
	return clamp(percentage, MinScore, MaxScore)
}

func intersectionSize(a, b []string) int {
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	n := 0
	for _, v := range a {
		if _, ok := set[v]; ok {
			n++
			delete(set, v) // duplicates in a count once
		}
	}
	return n
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
