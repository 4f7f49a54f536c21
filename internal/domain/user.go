package domain

import "time"

// User is an account that can declare sport interests, create playdates
// and chat. PasswordHash is a bcrypt digest and is never serialized.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName is the name shown next to chat messages and rosters.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
