// Package postgres provides a PostgreSQL-backed preference store for
// deployments that keep preferences alongside other relational state.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bankdemo/pkg/kvstore"

	_ "github.com/lib/pq"
)

// Store is a PostgreSQL-backed kvstore.Store implementation. Preferences
// live in a single upsert table keyed by preference name.
type Store struct {
	db   *sql.DB
	name string
}

// Config holds PostgreSQL connection configuration.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DefaultConfig returns default PostgreSQL configuration.
func DefaultConfig() Config {
	return Config{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "bankdemo",
		SSLMode:  "disable",
	}
}

// New opens a connection pool, verifies it, and ensures the preferences
// table exists.
func New(cfg Config) (*Store, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &Store{db: db, name: "postgres"}
	if err := store.initTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init preferences table: %w", err)
	}

	return store, nil
}

func (s *Store) initTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// Get returns the value for key, or kvstore.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := kvstore.ValidateKey(key); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = $1`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", kvstore.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query preference: %w", err)
	}
	return value, nil
}

// Set upserts value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE key = $1`, key,
	); err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}

// Name returns the store identifier.
func (s *Store) Name() string {
	return s.name
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
