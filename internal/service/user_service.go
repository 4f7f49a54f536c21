package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/auth"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
	"github.com/SangamithraMB/Sport-buddy-backend/lib/logger/sl"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMissingField       = errors.New("required field is missing")
)

type UserService struct {
	users  repository.UserRepository
	sports repository.SportRepository
	tokens *auth.TokenManager
	log    *slog.Logger
}

func NewUserService(users repository.UserRepository, sports repository.SportRepository, tokens *auth.TokenManager, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{users: users, sports: sports, tokens: tokens, log: log}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	const op = "service.user.register"
	log := s.log.With(slog.String("op", op), slog.String("username", input.Username))

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Username == "" || input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return nil, "", ErrMissingField
	}
	if len(input.Password) < 8 {
		return nil, "", ErrWeakPassword
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return nil, "", err
	}

	user := &domain.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		return nil, "", err
	}

	log.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	const op = "service.user.login"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		log.Info("login rejected")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		return nil, "", err
	}

	log.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))
	return user, token, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	const op = "service.user.delete"

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", slog.String("op", op), slog.Uint64("user_id", uint64(id)))
	return nil
}

func (s *UserService) AddInterest(ctx context.Context, userID, sportID uint) (*domain.SportInterest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.sports.GetByID(ctx, sportID); err != nil {
		return nil, err
	}
	return s.sports.AddInterest(ctx, userID, sportID)
}

func (s *UserService) ListInterests(ctx context.Context, userID uint) ([]*domain.SportInterest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.sports.ListInterests(ctx, userID)
}
