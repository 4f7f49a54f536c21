package repository

import (
	"context"
	"errors"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameExists      = errors.New("user with username already exists")
	ErrEmailExists         = errors.New("user with email already exists")
	ErrSportNotFound       = errors.New("sport not found")
	ErrInterestExists      = errors.New("sport interest already declared")
	ErrPlaydateNotFound    = errors.New("playdate not found")
	ErrParticipantExists   = errors.New("user already participates in playdate")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrPlaydateFull        = errors.New("playdate has reached max participants")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type SportRepository interface {
	Create(ctx context.Context, sport *domain.Sport) error
	GetByID(ctx context.Context, id uint) (*domain.Sport, error)
	List(ctx context.Context) ([]*domain.Sport, error)
	AddInterest(ctx context.Context, userID, sportID uint) (*domain.SportInterest, error)
	ListInterests(ctx context.Context, userID uint) ([]*domain.SportInterest, error)
}

type PlaydateRepository interface {
	Create(ctx context.Context, playdate *domain.Playdate) error
	GetByID(ctx context.Context, id uint) (*domain.Playdate, error)
	List(ctx context.Context) ([]*domain.Playdate, error)
	// Delete removes the playdate together with its participant rows
	// and room chat history.
	Delete(ctx context.Context, id uint) error
}

type ParticipantRepository interface {
	// Add inserts the participant row. When max is non-nil the count
	// check and the insert run as one atomic unit; callers still
	// serialize per playdate, see MembershipService.
	Add(ctx context.Context, userID, playdateID uint, max *int) error
	Remove(ctx context.Context, userID, playdateID uint) error
	Exists(ctx context.Context, userID, playdateID uint) (bool, error)
	ListByPlaydate(ctx context.Context, playdateID uint) ([]domain.ParticipantInfo, error)
}

type ChatRepository interface {
	Save(ctx context.Context, msg *domain.ChatMessage) error
	// ListByRoom returns room messages ordered by creation time ascending,
	// each annotated with the sender's display name.
	ListByRoom(ctx context.Context, roomID string) ([]*domain.ChatMessage, error)
	// ListByPair returns direct messages between the two users in either
	// direction, ordered by creation time ascending.
	ListByPair(ctx context.Context, userA, userB uint) ([]*domain.ChatMessage, error)
}
