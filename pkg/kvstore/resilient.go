package kvstore

import (
	"context"
	"time"

	"bankdemo/pkg/logging"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Resilient wraps a Store with a circuit breaker and per-operation timeout.
// Remote backends (redis, postgres) get wrapped so a flaky mirror degrades
// to errors quickly instead of stalling request handling; the in-memory
// backend does not need it.
type Resilient struct {
	store   Store
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  *logging.Logger
}

// ResilientConfig holds circuit breaker and timeout settings.
type ResilientConfig struct {
	// Timeout bounds each store operation. Zero disables the deadline.
	Timeout time.Duration

	// MaxRequests is the number of probe requests allowed while the
	// breaker is half-open.
	MaxRequests uint32

	// Interval is the cyclic period over which failure counts reset
	// while the breaker is closed.
	Interval time.Duration

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration

	// ConsecutiveFailures trips the breaker once reached.
	ConsecutiveFailures uint32
}

// DefaultResilientConfig returns settings suited to a small preference
// store: short timeouts, trip after five consecutive failures.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		Timeout:             2 * time.Second,
		MaxRequests:         3,
		Interval:            30 * time.Second,
		BreakerTimeout:      60 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// NewResilient wraps store with circuit breaker and timeout protection.
func NewResilient(store Store, config ResilientConfig) *Resilient {
	logger := logging.Global().Named("kvstore").Named(store.Name())

	if config.ConsecutiveFailures == 0 {
		config.ConsecutiveFailures = 5
	}

	settings := gobreaker.Settings{
		Name:        store.Name(),
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("store", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Resilient{
		store:   store,
		cb:      gobreaker.NewCircuitBreaker(settings),
		timeout: config.Timeout,
		logger:  logger,
	}
}

// Get retrieves a value with breaker and timeout protection. A missing key
// counts as a successful call; only backend failures feed the breaker.
func (r *Resilient) Get(ctx context.Context, key string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	result, err := r.cb.Execute(func() (interface{}, error) {
		value, err := r.store.Get(ctx, key)
		if IsNotFound(err) {
			return notFoundMarker{}, nil
		}
		return value, err
	})
	if err != nil {
		return "", r.translate(ctx, err, "get", key)
	}
	if _, missing := result.(notFoundMarker); missing {
		return "", ErrKeyNotFound
	}
	return result.(string), nil
}

// Set stores a value with breaker and timeout protection.
func (r *Resilient) Set(ctx context.Context, key, value string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.store.Set(ctx, key, value)
	})
	if err != nil {
		return r.translate(ctx, err, "set", key)
	}
	return nil
}

// Delete removes a value with breaker and timeout protection.
func (r *Resilient) Delete(ctx context.Context, key string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.store.Delete(ctx, key)
	})
	if err != nil {
		return r.translate(ctx, err, "delete", key)
	}
	return nil
}

// Name returns the underlying store's identifier.
func (r *Resilient) Name() string {
	return r.store.Name()
}

// Close closes the underlying store.
func (r *Resilient) Close() error {
	return r.store.Close()
}

// translate converts breaker and deadline failures into the package's
// sentinel errors and logs the rest.
func (r *Resilient) translate(ctx context.Context, err error, operation, key string) error {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		r.logger.Warn("circuit breaker open - request rejected",
			zap.String("operation", operation),
			zap.String("key", key),
		)
		return ErrCircuitOpen
	}
	if ctx.Err() == context.DeadlineExceeded {
		r.logger.Warn("operation timeout",
			zap.String("operation", operation),
			zap.String("key", key),
			zap.Duration("timeout", r.timeout),
		)
		return ErrTimeout
	}
	r.logger.Error("store operation failed",
		zap.String("operation", operation),
		zap.String("key", key),
		zap.Error(err),
	)
	return err
}

// notFoundMarker distinguishes a missing key from a backend failure inside
// the breaker callback.
type notFoundMarker struct{}
