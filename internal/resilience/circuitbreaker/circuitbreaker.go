// Package circuitbreaker guards the database behind a github.com/sony/gobreaker
// circuit so an unavailable store fails fast instead of piling up requests.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"qna/internal/domain/entity"
	"qna/internal/observability/metrics"

	"github.com/sony/gobreaker"
)

// ErrOpen is returned while the circuit rejects calls.
var ErrOpen = gobreaker.ErrOpenState

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name is the circuit breaker name for logging
	Name string

	// MaxRequests is the maximum number of requests allowed in half-open state
	MaxRequests uint32

	// Interval is the cyclic period of the closed state to clear counts
	Interval time.Duration

	// Timeout is how long to wait in open state before trying again
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit, e.g. 0.6
	FailureThreshold float64

	// MinRequests is the minimum number of requests before the ratio is evaluated
	MinRequests uint32
}

// DBConfig returns the configuration used for the database circuit.
// It opens after 5 consecutive infrastructure failures and lets a trial request through after 30s.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// CircuitBreaker wraps gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker. State changes are logged and exported
// through the db_circuit_breaker_state gauge.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.RecordCircuitBreakerState(int(to))
		},
	}

	metrics.RecordCircuitBreakerState(int(gobreaker.StateClosed))
	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// isSuccessful keeps business outcomes and caller cancellations from
// counting against the database.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var validation *entity.ValidationError
	switch {
	case errors.Is(err, entity.ErrNotFound),
		errors.Is(err, entity.ErrCannotDelete),
		errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrAlreadyExists),
		errors.Is(err, entity.ErrInvalidInput),
		errors.As(err, &validation),
		errors.Is(err, context.Canceled):
		return true
	}
	return false
}

// Execute runs fn through the circuit. While open it returns ErrOpen without calling fn.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	_, err := cb.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

func (cb *CircuitBreaker) Name() string { return cb.name }

// IsOpen returns true if the circuit breaker is in the open state.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
