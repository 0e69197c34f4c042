package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid_input")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrStepNotFound       = errors.New("goal step not found")
	ErrCategoryNotFound   = errors.New("category not found")
)

// InputError is a validation failure with a message safe to show the
// client. It matches ErrInvalidInput under errors.Is.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error {
	return &InputError{Message: msg}
}
