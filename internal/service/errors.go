package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input that is missing or malformed. Wrapped errors carry the detail.
	ErrValidation = errors.New("validation error")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProjectNotFound is returned when the project does not exist for the caller.
	ErrProjectNotFound = errors.New("project not found")
	// ErrAlreadyCompleted is returned when completing or editing a completed project.
	ErrAlreadyCompleted = errors.New("project is already completed")
)

// ErrMissingFields is the validation error for a registration without username, email or password.
var ErrMissingFields = fmt.Errorf("%w: username, email and password are required", ErrValidation)
