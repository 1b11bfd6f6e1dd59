package domain

import (
	"errors"
	"fmt"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "user logged in successfully"
	MessageSuccessGetUser  = "user retrieved successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetUser  = "failed to retrieve user"

	ErrEmailAlreadyExists = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
)
