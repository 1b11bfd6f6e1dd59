package domain

import (
	"errors"
	"fmt"
)

const (
	RoleUser = "user"

	DateFormat = "2006-01-02"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	// ErrValidation and ErrNotFound are the two error kinds surfaced to callers.
	// Specific errors wrap one of them so errors.Is matches both.
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")

	ErrParseUUID          = fmt.Errorf("%w: failed to parse UUID", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidation)
	ErrUserNotAllowed     = errors.New("user not allowed")
	ErrUnauthorizedAccess = errors.New("unauthorized access")
	ErrTokenNotFound      = errors.New("failed to token not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)
