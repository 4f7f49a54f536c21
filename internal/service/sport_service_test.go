package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
)

func TestSportService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewSportService(repository.NewInMemorySportRepository(), nil)

	sport, err := svc.Create(ctx, "  tennis ", "single")
	require.NoError(t, err)
	assert.Equal(t, "tennis", sport.Name)
	assert.Equal(t, domain.SportTypeSingle, sport.Type)

	// Empty type defaults to "both".
	sport, err = svc.Create(ctx, "badminton", "")
	require.NoError(t, err)
	assert.Equal(t, domain.SportTypeBoth, sport.Type)

	_, err = svc.Create(ctx, "", "team")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Create(ctx, "chess boxing", "hybrid")
	assert.ErrorIs(t, err, ErrInvalidSportType)
}

func TestSportService_GetAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewSportService(repository.NewInMemorySportRepository(), nil)

	created, err := svc.Create(ctx, "tennis", "single")
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	_, err = svc.Get(ctx, created.ID+1)
	assert.ErrorIs(t, err, repository.ErrSportNotFound)

	sports, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sports, 1)
}
