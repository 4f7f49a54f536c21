package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/auth"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/service"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantCode   string
		wantStatus int
	}{
		{repository.ErrPlaydateNotFound, codeNotFound, http.StatusNotFound},
		{repository.ErrUserNotFound, codeNotFound, http.StatusNotFound},
		{service.ErrNotParticipant, codeNotFound, http.StatusNotFound},
		{service.ErrAlreadyParticipant, codeConflict, http.StatusConflict},
		{repository.ErrUsernameExists, codeConflict, http.StatusConflict},
		{repository.ErrInterestExists, codeConflict, http.StatusConflict},
		{service.ErrPlaydateFull, codeCapacityExceeded, http.StatusForbidden},
		{service.ErrInvalidTarget, codeBadRequest, http.StatusBadRequest},
		{service.ErrEmptyMessage, codeBadRequest, http.StatusBadRequest},
		{service.ErrMessageTooLong, codeBadRequest, http.StatusBadRequest},
		{service.ErrInvalidDate, codeBadRequest, http.StatusBadRequest},
		{auth.ErrInvalidToken, codeAuthenticationFailed, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, codeAuthenticationFailed, http.StatusUnauthorized},
		{errors.New("database on fire"), codeInternalError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.wantCode+"/"+tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.wantCode, errorCode(tc.err))
			assert.Equal(t, tc.wantStatus, statusFromError(tc.err))
		})
	}
}

func TestErrorMappingUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("join playdate: %w", service.ErrPlaydateFull)
	assert.Equal(t, codeCapacityExceeded, errorCode(wrapped))
	assert.Equal(t, http.StatusForbidden, statusFromError(wrapped))
}
