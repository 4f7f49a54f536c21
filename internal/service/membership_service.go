package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
	"github.com/SangamithraMB/Sport-buddy-backend/lib/logger/sl"
)

var (
	ErrAlreadyParticipant = errors.New("user is already a participant")
	ErrNotParticipant     = errors.New("user is not a participant")
	ErrPlaydateFull       = errors.New("playdate is full")
)

// MembershipService gates entry into a playdate's participant list. The
// capacity check and the insert run under a per-playdate mutex so two
// racing joins cannot both observe a free slot and overshoot
// MaxParticipants. The Postgres repository repeats the check inside its
// transaction; the lock here is what serializes the read-check-write.
type MembershipService struct {
	users        repository.UserRepository
	playdates    repository.PlaydateRepository
	participants repository.ParticipantRepository
	log          *slog.Logger

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewMembershipService(
	users repository.UserRepository,
	playdates repository.PlaydateRepository,
	participants repository.ParticipantRepository,
	log *slog.Logger,
) *MembershipService {
	if log == nil {
		log = slog.Default()
	}
	return &MembershipService{
		users:        users,
		playdates:    playdates,
		participants: participants,
		log:          log,
		locks:        make(map[uint]*sync.Mutex),
	}
}

func (s *MembershipService) playdateLock(playdateID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[playdateID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[playdateID] = lock
	}
	return lock
}

func (s *MembershipService) Join(ctx context.Context, userID, playdateID uint) (*domain.Roster, error) {
	const op = "service.membership.join"
	log := s.log.With(
		slog.String("op", op),
		slog.Uint64("user_id", uint64(userID)),
		slog.Uint64("playdate_id", uint64(playdateID)),
	)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	playdate, err := s.playdates.GetByID(ctx, playdateID)
	if err != nil {
		return nil, err
	}

	lock := s.playdateLock(playdateID)
	lock.Lock()
	err = s.participants.Add(ctx, userID, playdateID, playdate.MaxParticipants)
	lock.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrParticipantExists):
			return nil, ErrAlreadyParticipant
		case errors.Is(err, repository.ErrPlaydateFull):
			log.Info("join rejected, playdate full")
			return nil, ErrPlaydateFull
		default:
			log.Error("failed to add participant", sl.Err(err))
			return nil, err
		}
	}

	roster, err := s.roster(ctx, playdateID)
	if err != nil {
		return nil, err
	}
	log.Info("user joined playdate", slog.Int("count", roster.Count))
	return roster, nil
}

func (s *MembershipService) Leave(ctx context.Context, userID, playdateID uint) (*domain.Roster, error) {
	const op = "service.membership.leave"
	log := s.log.With(
		slog.String("op", op),
		slog.Uint64("user_id", uint64(userID)),
		slog.Uint64("playdate_id", uint64(playdateID)),
	)

	if _, err := s.playdates.GetByID(ctx, playdateID); err != nil {
		return nil, err
	}

	if err := s.participants.Remove(ctx, userID, playdateID); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return nil, ErrNotParticipant
		}
		log.Error("failed to remove participant", sl.Err(err))
		return nil, err
	}

	roster, err := s.roster(ctx, playdateID)
	if err != nil {
		return nil, err
	}
	log.Info("user left playdate", slog.Int("count", roster.Count))
	return roster, nil
}

// List returns the current roster. A playdate with no participants yields
// an empty roster, distinct from the not-found error for a missing playdate.
func (s *MembershipService) List(ctx context.Context, playdateID uint) (*domain.Roster, error) {
	if _, err := s.playdates.GetByID(ctx, playdateID); err != nil {
		return nil, err
	}
	return s.roster(ctx, playdateID)
}

func (s *MembershipService) IsParticipant(ctx context.Context, userID, playdateID uint) (bool, error) {
	return s.participants.Exists(ctx, userID, playdateID)
}

func (s *MembershipService) roster(ctx context.Context, playdateID uint) (*domain.Roster, error) {
	participants, err := s.participants.ListByPlaydate(ctx, playdateID)
	if err != nil {
		return nil, err
	}
	return &domain.Roster{
		PlaydateID:   playdateID,
		Count:        len(participants),
		Participants: participants,
	}, nil
}
