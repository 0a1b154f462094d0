package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the umbrella for rejected input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is the umbrella for missing resources.
	ErrNotFound = errors.New("not found")

	ErrEmptyCart        = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrCartItemNotFound = fmt.Errorf("%w: cart item not found", ErrNotFound)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(err error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, err)
}
