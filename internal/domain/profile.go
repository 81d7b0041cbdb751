package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PersonalityMap stores free-form question/answer pairs as JSONB.
type PersonalityMap map[string]string

func (p PersonalityMap) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

func (p *PersonalityMap) Scan(src interface{}) error {
	if src == nil {
		*p = PersonalityMap{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into PersonalityMap", src)
	}
	return json.Unmarshal(b, p)
}

type Profile struct {
	ID                   string         `json:"id" db:"id"`
	Name                 string         `json:"name" db:"name"`
	Age                  int            `json:"age" db:"age"`
	Bio                  *string        `json:"bio" db:"bio"`
	InstagramProfile     *string        `json:"instagram_profile" db:"instagram_profile"`
	ImageURL             *string        `json:"image_url" db:"image_url"`
	Hobbies              []string       `json:"hobbies" db:"hobbies"`
	Availability         []string       `json:"availability" db:"availability"`
	Personality          PersonalityMap `json:"personality" db:"personality"`
	SocialLevel          int            `json:"social_level" db:"social_level"`
	IsOnboardingComplete bool           `json:"is_onboarding_complete" db:"is_onboarding_complete"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at" db:"updated_at"`
}

// HasPlausibleAge reports whether the age field holds a believable value.
// Zero means the user never provided one.
func (p *Profile) HasPlausibleAge() bool {
	return p.Age >= 16 && p.Age <= 100
}

// ScoredProfile is a profile annotated with a freshly computed match
// percentage for a specific viewer. InteractionStatus is nil for
// not-yet-judged candidates.
type ScoredProfile struct {
	Profile
	MatchPercentage   int              `json:"match_percentage"`
	InteractionStatus *InteractionType `json:"interaction_status"`
}
