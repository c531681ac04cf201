// Package kvstore defines the device preference store boundary: a small
// string-keyed, string-valued store with interchangeable backends. The
// in-memory backend stands in for on-device storage; the redis and
// postgres backends mirror preferences off-device.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"unicode"
)

// Store is the preference store contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Name identifies the backend for logs and metrics.
	Name() string

	// Close releases backend resources.
	Close() error
}

// Standard store errors shared by all backends.
var (
	// ErrKeyNotFound is returned when a requested key does not exist.
	ErrKeyNotFound = errors.New("kvstore: key not found")

	// ErrInvalidKey is returned when a key is empty, too long, or
	// contains whitespace or control characters.
	ErrInvalidKey = errors.New("kvstore: invalid key")

	// ErrTimeout is returned when a store operation exceeds its deadline.
	ErrTimeout = errors.New("kvstore: operation timeout")

	// ErrCircuitOpen is returned when the resilient wrapper's circuit
	// breaker is rejecting requests.
	ErrCircuitOpen = errors.New("kvstore: circuit breaker open")
)

// IsNotFound reports whether err indicates a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// ValidateKey checks that a key is usable by every backend: non-empty, at
// most 250 bytes, no whitespace or control characters.
func ValidateKey(key string) error {
	if key == "" || len(key) > 250 {
		return ErrInvalidKey
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return ErrInvalidKey
		}
	}
	return nil
}

// WrapError adds backend and operation context to a store error.
func WrapError(err error, store, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("kvstore %s %s: %w", store, operation, err)
}
