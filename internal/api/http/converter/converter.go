package converter

import (
	"time"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
)

type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func UserToApi(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func UsersToApi(users []*domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, UserToApi(user))
	}
	return result
}

type PlaydateResponse struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	SportID         uint    `json:"sport_id"`
	CreatorID       uint    `json:"creator_id"`
	Address         string  `json:"address"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Date            string  `json:"date"`
	MaxParticipants *int    `json:"max_participants"`
}

func PlaydateToApi(playdate *domain.Playdate) PlaydateResponse {
	return PlaydateResponse{
		ID:              playdate.ID,
		Title:           playdate.Title,
		SportID:         playdate.SportID,
		CreatorID:       playdate.CreatorID,
		Address:         playdate.Address,
		Latitude:        playdate.Latitude,
		Longitude:       playdate.Longitude,
		Date:            playdate.Date.UTC().Format(time.RFC3339),
		MaxParticipants: playdate.MaxParticipants,
	}
}

func PlaydatesToApi(playdates []*domain.Playdate) []PlaydateResponse {
	result := make([]PlaydateResponse, 0, len(playdates))
	for _, playdate := range playdates {
		result = append(result, PlaydateToApi(playdate))
	}
	return result
}
