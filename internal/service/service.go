package service

import (
	"context"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
)

type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type CreatePlaydateInput struct {
	Title           string
	SportID         uint
	CreatorID       uint
	Address         string
	Date            string
	MaxParticipants *int
}

// MessageTarget selects the destination of a chat message or history
// request: exactly one of PlaydateID (room chat) and PeerID (direct chat)
// must be set.
type MessageTarget struct {
	PlaydateID *uint
	PeerID     *uint
}

type UserInteractor interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id uint) error
	AddInterest(ctx context.Context, userID, sportID uint) (*domain.SportInterest, error)
	ListInterests(ctx context.Context, userID uint) ([]*domain.SportInterest, error)
}

type SportInteractor interface {
	Create(ctx context.Context, name, sportType string) (*domain.Sport, error)
	Get(ctx context.Context, id uint) (*domain.Sport, error)
	List(ctx context.Context) ([]*domain.Sport, error)
}

type PlaydateInteractor interface {
	Create(ctx context.Context, input CreatePlaydateInput) (*domain.Playdate, error)
	Get(ctx context.Context, id uint) (*domain.Playdate, error)
	List(ctx context.Context) ([]*domain.Playdate, error)
	Delete(ctx context.Context, id uint) error
}

type MembershipInteractor interface {
	Join(ctx context.Context, userID, playdateID uint) (*domain.Roster, error)
	Leave(ctx context.Context, userID, playdateID uint) (*domain.Roster, error)
	List(ctx context.Context, playdateID uint) (*domain.Roster, error)
	IsParticipant(ctx context.Context, userID, playdateID uint) (bool, error)
}

type ChatInteractor interface {
	Send(ctx context.Context, token string, target MessageTarget, body, messageType, clientTimestamp string) (*domain.ChatMessage, error)
	History(ctx context.Context, token string, target MessageTarget) ([]*domain.ChatMessage, error)
}
