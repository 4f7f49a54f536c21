package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
)

var ErrInvalidSportType = errors.New("invalid sport type")

type SportService struct {
	sports repository.SportRepository
	log    *slog.Logger
}

func NewSportService(sports repository.SportRepository, log *slog.Logger) *SportService {
	if log == nil {
		log = slog.Default()
	}
	return &SportService{sports: sports, log: log}
}

func (s *SportService) Create(ctx context.Context, name, sportType string) (*domain.Sport, error) {
	const op = "service.sport.create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingField
	}

	parsedType, err := domain.ParseSportType(sportType)
	if err != nil {
		return nil, ErrInvalidSportType
	}

	sport := &domain.Sport{Name: name, Type: parsedType}
	if err := s.sports.Create(ctx, sport); err != nil {
		return nil, err
	}

	s.log.Info("sport created", slog.String("op", op), slog.Uint64("sport_id", uint64(sport.ID)))
	return sport, nil
}

func (s *SportService) Get(ctx context.Context, id uint) (*domain.Sport, error) {
	return s.sports.GetByID(ctx, id)
}

func (s *SportService) List(ctx context.Context) ([]*domain.Sport, error) {
	return s.sports.List(ctx)
}
