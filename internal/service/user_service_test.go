package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/auth"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
)

func newUserFixture(t *testing.T) (*UserService, *repository.InMemorySportRepository) {
	t.Helper()

	sports := repository.NewInMemorySportRepository()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewUserService(repository.NewInMemoryUserRepository(), sports, tokens, nil), sports
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Walker",
		Email:     "Alice@Example.com",
		Password:  "long-enough-password",
	}
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture(t)

	user, token, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "long-enough-password", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "long-enough-password"))

	logged, token, err := svc.Login(ctx, "alice", "long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)
}

func TestUserService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture(t)

	missing := validRegisterInput()
	missing.FirstName = ""
	_, _, err := svc.Register(ctx, missing)
	assert.ErrorIs(t, err, ErrMissingField)

	weak := validRegisterInput()
	weak.Password = "short"
	_, _, err = svc.Register(ctx, weak)
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestUserService_RegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture(t)

	_, _, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	dup := validRegisterInput()
	dup.Email = "other@example.com"
	_, _, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrUsernameExists)
}

func TestUserService_LoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserFixture(t)

	_, _, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "long-enough-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Interests(t *testing.T) {
	ctx := context.Background()
	svc, sports := newUserFixture(t)

	user, _, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	tennis := &domain.Sport{Name: "tennis", Type: domain.SportTypeSingle}
	require.NoError(t, sports.Create(ctx, tennis))

	interest, err := svc.AddInterest(ctx, user.ID, tennis.ID)
	require.NoError(t, err)
	assert.Equal(t, tennis.ID, interest.SportID)

	_, err = svc.AddInterest(ctx, user.ID, tennis.ID)
	assert.ErrorIs(t, err, repository.ErrInterestExists)

	_, err = svc.AddInterest(ctx, user.ID, 99)
	assert.ErrorIs(t, err, repository.ErrSportNotFound)

	interests, err := svc.ListInterests(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, interests, 1)
}
