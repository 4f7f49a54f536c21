package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:50;uniqueIndex;not null"`
	FirstName    string    `gorm:"size:50;not null"`
	LastName     string    `gorm:"size:50;not null"`
	Email        string    `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	SportInterests []SportInterest `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Playdates      []Playdate      `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	Participations []Participant   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type Sport struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;index;not null"`
	Type string `gorm:"size:16;not null;default:both"`
}

type SportInterest struct {
	ID      uint `gorm:"primaryKey"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_user_sport"`
	SportID uint `gorm:"not null;uniqueIndex:idx_user_sport"`

	Sport Sport `gorm:"foreignKey:SportID;constraint:OnDelete:CASCADE"`
}

type Playdate struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"size:100;not null"`
	SportID         uint      `gorm:"index;not null"`
	CreatorID       uint      `gorm:"index;not null"`
	Address         string    `gorm:"size:255;not null"`
	Latitude        float64   `gorm:"not null"`
	Longitude       float64   `gorm:"not null"`
	Date            time.Time `gorm:"not null"`
	MaxParticipants *int
	CreatedAt       time.Time `gorm:"not null"`

	Participants []Participant `gorm:"foreignKey:PlaydateID;constraint:OnDelete:CASCADE"`
}

type Participant struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_playdate"`
	PlaydateID uint `gorm:"not null;uniqueIndex:idx_user_playdate"`
	CreatedAt  time.Time
}

type Chat struct {
	ID          uint      `gorm:"primaryKey"`
	SenderID    uint      `gorm:"index;not null"`
	ReceiverID  *uint     `gorm:"index"`
	RoomID      *string   `gorm:"size:64;index"`
	Message     string    `gorm:"type:text;not null"`
	MessageType string    `gorm:"size:16;not null;default:text"`
	Status      string    `gorm:"size:20;not null;default:sent"`
	CreatedAt   time.Time `gorm:"index;not null"`
}
