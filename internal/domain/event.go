package domain

import "time"

type Event struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	EventDate       time.Time `json:"date" db:"event_date"`
	EventTime       string    `json:"time" db:"event_time"`
	Location        string    `json:"location" db:"location"`
	Category        string    `json:"category" db:"category"`
	MaxParticipants *int      `json:"max_participants" db:"max_participants"`
	ImageURL        *string   `json:"image_url" db:"image_url"`
	CreatedBy       string    `json:"created_by" db:"created_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type EventParticipant struct {
	ID       int       `json:"id" db:"id"`
	EventID  string    `json:"event_id" db:"event_id"`
	UserID   string    `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}
