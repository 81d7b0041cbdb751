package domain

import "time"

type InteractionType string

const (
	InteractionLike    InteractionType = "like"
	InteractionDislike InteractionType = "dislike"
)

func (t InteractionType) IsValid() bool {
	return t == InteractionLike || t == InteractionDislike
}

// Interaction is a directed like/dislike edge. At most one row exists per
// (UserID, TargetUserID) pair; recording again overwrites the type.
type Interaction struct {
	ID           int             `json:"id" db:"id"`
	UserID       string          `json:"user_id" db:"user_id"`
	TargetUserID string          `json:"target_user_id" db:"target_user_id"`
	Type         InteractionType `json:"interaction_type" db:"interaction_type"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
