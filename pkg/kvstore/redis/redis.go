// Package redis provides a Redis-backed preference store, used when a
// deployment mirrors device preferences to a shared backend.
package redis

import (
	"context"
	"fmt"
	"time"

	"bankdemo/pkg/kvstore"

	"github.com/redis/rueidis"
)

// Store is a Redis-backed kvstore.Store implementation.
type Store struct {
	client rueidis.Client
	config Config
}

// Config holds Redis connection configuration. A single node is enough for
// a preference mirror.
type Config struct {
	Name string
	// Addr is the Redis server address, e.g. "localhost:6379".
	Addr     string
	Username string
	Password string
	// DB is the Redis database number (0-15).
	DB           int
	KeyPrefix    string
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns a default Redis configuration.
func DefaultConfig() Config {
	return Config{
		Name:         "redis",
		Addr:         "localhost:6379",
		KeyPrefix:    "prefs:",
		DialTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// New connects to Redis and verifies the connection with a ping.
func New(config Config) (*Store, error) {
	if config.Name == "" {
		config.Name = "redis"
	}
	if config.Addr == "" {
		return nil, fmt.Errorf("redis: no address configured")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:      []string{config.Addr},
		Username:         config.Username,
		Password:         config.Password,
		SelectDB:         config.DB,
		ConnWriteTimeout: config.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("redis: failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DialTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to ping server: %w", err)
	}

	return &Store{client: client, config: config}, nil
}

// Get returns the value for key, or kvstore.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := kvstore.ValidateKey(key); err != nil {
		return "", err
	}

	cmd := s.client.B().Get().Key(s.config.KeyPrefix + key).Build()
	resp := s.client.Do(ctx, cmd)
	if err := resp.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return "", kvstore.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}

	value, err := resp.ToString()
	if err != nil {
		return "", fmt.Errorf("redis get: failed to read response: %w", err)
	}
	return value, nil
}

// Set stores value under key without expiry; preferences live until
// overwritten or deleted.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	cmd := s.client.B().Set().Key(s.config.KeyPrefix + key).Value(value).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	cmd := s.client.B().Del().Key(s.config.KeyPrefix + key).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Name returns the store identifier.
func (s *Store) Name() string {
	return s.config.Name
}

// Close closes the underlying client.
func (s *Store) Close() error {
	s.client.Close()
	return nil
}
