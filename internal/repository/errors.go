package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage marks failures of the underlying engine. Callers may retry;
	// repositories never do.
	ErrStorage = errors.New("storage error")

	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

func storageError(action string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", action, ErrStorage, err)
}
