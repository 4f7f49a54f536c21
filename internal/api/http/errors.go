package http

import (
	"errors"
	"net/http"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/auth"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/service"
)

// Error taxonomy codes carried on websocket error events.
const (
	codeNotFound             = "not_found"
	codeConflict             = "conflict"
	codeCapacityExceeded     = "capacity_exceeded"
	codeBadRequest           = "bad_request"
	codeAuthenticationFailed = "authentication_failed"
	codeInternalError        = "internal_error"
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrSportNotFound),
		errors.Is(err, repository.ErrPlaydateNotFound),
		errors.Is(err, service.ErrNotParticipant):
		return codeNotFound
	case errors.Is(err, repository.ErrUsernameExists),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrInterestExists),
		errors.Is(err, service.ErrAlreadyParticipant):
		return codeConflict
	case errors.Is(err, service.ErrPlaydateFull):
		return codeCapacityExceeded
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidSportType),
		errors.Is(err, service.ErrInvalidMessageType),
		errors.Is(err, service.ErrInvalidTarget),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrMessageTooLong):
		return codeBadRequest
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return codeAuthenticationFailed
	default:
		return codeInternalError
	}
}

func statusFromError(err error) int {
	switch errorCode(err) {
	case codeNotFound:
		return http.StatusNotFound
	case codeConflict:
		return http.StatusConflict
	case codeCapacityExceeded:
		return http.StatusForbidden
	case codeBadRequest:
		return http.StatusBadRequest
	case codeAuthenticationFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
