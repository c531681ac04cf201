// Package memory provides the in-process preference store, the default
// backend and the stand-in for device-local storage. Preferences never
// expire, so there is no TTL machinery; the store is a guarded map.
package memory

import (
	"context"
	"sync"

	"bankdemo/pkg/kvstore"
)

// Store is an in-memory kvstore.Store implementation.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
	name string
}

// Config holds configuration for the memory store.
type Config struct {
	// Name is the store identifier for logs and metrics.
	Name string
}

// New creates an empty in-memory store.
func New(config Config) *Store {
	if config.Name == "" {
		config.Name = "memory"
	}
	return &Store{
		data: make(map[string]string),
		name: config.Name,
	}
}

// Get returns the value for key, or kvstore.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := kvstore.ValidateKey(key); err != nil {
		return "", err
	}

	s.mu.RLock()
	value, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return "", kvstore.ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()

	return nil
}

// Delete removes key. Returns nil even if the key doesn't exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	return nil
}

// Name returns the store identifier.
func (s *Store) Name() string {
	return s.name
}

// Close clears the store.
func (s *Store) Close() error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
