package service

import (
	"errors"
	"strings"
)

var (
	ErrUnauthenticated    = errors.New("please authenticate")
	ErrForbidden          = errors.New("permission denied")
	ErrNotFound           = errors.New("project not found")
	ErrMissingID          = errors.New("project id is required")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation failed")
	ErrNoImage            = errors.New("no image uploaded")
	ErrNotAnImage         = errors.New("uploaded file is not an image")
)

// ValidationError carries every violated rule of a payload, in field order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
