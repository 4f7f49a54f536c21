package domain

import "fmt"

type SportType string

const (
	SportTypeSingle SportType = "single"
	SportTypeTeam   SportType = "team"
	SportTypeBoth   SportType = "both"
)

// ParseSportType validates a wire value; the empty string defaults to "both".
func ParseSportType(s string) (SportType, error) {
	switch SportType(s) {
	case "":
		return SportTypeBoth, nil
	case SportTypeSingle, SportTypeTeam, SportTypeBoth:
		return SportType(s), nil
	default:
		return "", fmt.Errorf("unknown sport type: %q", s)
	}
}

type Sport struct {
	ID   uint      `json:"id"`
	Name string    `json:"name"`
	Type SportType `json:"type"`
}

// SportInterest links a user to a sport they want to play.
// A user declares each sport at most once.
type SportInterest struct {
	ID      uint `json:"id"`
	UserID  uint `json:"user_id"`
	SportID uint `json:"sport_id"`
}
