package domain

import "time"

// Playdate is a scheduled, optionally capacity-limited sporting event.
// MaxParticipants == nil means unlimited.
type Playdate struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	SportID         uint      `json:"sport_id"`
	CreatorID       uint      `json:"creator_id"`
	Address         string    `json:"address"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Date            time.Time `json:"date"`
	MaxParticipants *int      `json:"max_participants"`
	CreatedAt       time.Time `json:"created_at"`
}

// ParticipantInfo is the roster entry pushed back to clients after a
// join or leave, enough for UI refresh without a second lookup.
type ParticipantInfo struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Roster is the current participant state of one playdate.
type Roster struct {
	PlaydateID   uint              `json:"playdate_id"`
	Count        int               `json:"count"`
	Participants []ParticipantInfo `json:"participants"`
}
