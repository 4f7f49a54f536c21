package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/geocode"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
)

var ErrInvalidDate = errors.New("invalid date format")

type PlaydateService struct {
	playdates repository.PlaydateRepository
	sports    repository.SportRepository
	users     repository.UserRepository
	geocoder  *geocode.Client
	log       *slog.Logger
}

func NewPlaydateService(
	playdates repository.PlaydateRepository,
	sports repository.SportRepository,
	users repository.UserRepository,
	geocoder *geocode.Client,
	log *slog.Logger,
) *PlaydateService {
	if log == nil {
		log = slog.Default()
	}
	return &PlaydateService{
		playdates: playdates,
		sports:    sports,
		users:     users,
		geocoder:  geocoder,
		log:       log,
	}
}

func (s *PlaydateService) Create(ctx context.Context, input CreatePlaydateInput) (*domain.Playdate, error) {
	const op = "service.playdate.create"
	log := s.log.With(slog.String("op", op), slog.Uint64("creator_id", uint64(input.CreatorID)))

	input.Title = strings.TrimSpace(input.Title)
	input.Address = strings.TrimSpace(input.Address)
	if input.Title == "" || input.Address == "" {
		return nil, ErrMissingField
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if _, err := s.users.GetByID(ctx, input.CreatorID); err != nil {
		return nil, err
	}
	if _, err := s.sports.GetByID(ctx, input.SportID); err != nil {
		return nil, err
	}

	playdate := &domain.Playdate{
		Title:           input.Title,
		SportID:         input.SportID,
		CreatorID:       input.CreatorID,
		Address:         input.Address,
		Date:            date,
		MaxParticipants: input.MaxParticipants,
	}

	if s.geocoder != nil {
		lat, lng, found := s.geocoder.Lookup(ctx, input.Address)
		if found {
			playdate.Latitude = lat
			playdate.Longitude = lng
		} else {
			log.Warn("address could not be geocoded", slog.String("address", input.Address))
		}
	}

	if err := s.playdates.Create(ctx, playdate); err != nil {
		return nil, err
	}

	log.Info("playdate created", slog.Uint64("playdate_id", uint64(playdate.ID)))
	return playdate, nil
}

func (s *PlaydateService) Get(ctx context.Context, id uint) (*domain.Playdate, error) {
	return s.playdates.GetByID(ctx, id)
}

func (s *PlaydateService) List(ctx context.Context) ([]*domain.Playdate, error) {
	return s.playdates.List(ctx)
}

// Delete removes the playdate and cascades to its participant rows and
// room chat history.
func (s *PlaydateService) Delete(ctx context.Context, id uint) error {
	const op = "service.playdate.delete"

	if err := s.playdates.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("playdate deleted", slog.String("op", op), slog.Uint64("playdate_id", uint64(id)))
	return nil
}

// parseDate accepts RFC3339 and the original client format
// "02-01-2006 15:04:05"; both normalize to UTC.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse("02-01-2006 15:04:05", value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}
