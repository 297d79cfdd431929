package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel wrapped by all not-found errors
var ErrNotFound = errors.New("resource not found")

// NewNotFoundError constructs a not-found error carrying the resource and id
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
