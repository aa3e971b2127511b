package mutation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/remote"
)

// MaxAttempts bounds the calls made for one invocation.
const MaxAttempts = 3

// Kind classifies the outcome of an invocation.
type Kind string

const (
	KindSuccess     Kind = "success"
	KindApplication Kind = "application"
	KindTransport   Kind = "transport"
	KindConsistency Kind = "consistency"
	KindCancelled   Kind = "cancelled"
)

// KindOf classifies err as returned by the executor or a remote call.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindSuccess
	case errors.Is(err, exchange.ErrInconsistentState), errors.Is(err, item.ErrInvalidStatus):
		return KindConsistency
	case remote.IsTransport(err):
		return KindTransport
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	}
	return KindApplication
}

// Report describes how an invocation ran.
type Report struct {
	Operation         string
	Token             string
	Attempts          int
	TransportFailures int
}

// Retried reports whether at least one transport failure preceded the result.
func (r Report) Retried() bool {
	return r.TransportFailures > 0
}

// Executor runs remote mutations under one idempotency token per invocation,
// retrying transport failures only.
type Executor struct {
	logger      zerolog.Logger
	maxAttempts int
	newToken    func() string
}

// Option configures an Executor.
type Option func(*Executor)

// WithTokenSource replaces the token generator.
func WithTokenSource(fn func() string) Option {
	return func(e *Executor) {
		if fn != nil {
			e.newToken = fn
		}
	}
}

// NewExecutor creates an executor.
func NewExecutor(logger zerolog.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger:      logger.With().Str("service", "mutation").Logger(),
		maxAttempts: MaxAttempts,
		newToken:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do invokes call until it succeeds, fails with a non-transport error, the
// context ends, or the attempts are exhausted. Every attempt receives the
// same token.
func (e *Executor) Do(ctx context.Context, op string, call func(ctx context.Context, token string) error) (Report, error) {
	report := Report{Operation: op, Token: e.newToken()}
	log := e.logger.With().Str("operation", op).Str("token", report.Token).Logger()

	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("%s: %w", op, err)
		}
		report.Attempts = attempt

		err := call(ctx, report.Token)
		if err == nil {
			log.Debug().Int("attempt", attempt).Msg("mutation succeeded")
			return report, nil
		}
		if !remote.IsTransport(err) {
			log.Debug().Int("attempt", attempt).Err(err).Msg("mutation rejected")
			return report, err
		}
		// A lost response is only a cancellation if the context ended.
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug().Int("attempt", attempt).Err(err).Msg("mutation cancelled")
			return report, fmt.Errorf("%s: %w", op, ctxErr)
		}

		report.TransportFailures++
		lastErr = err
		log.Warn().Int("attempt", attempt).Err(err).Msg("transport failure")
	}
	log.Error().Int("attempts", report.Attempts).Err(lastErr).Msg("mutation attempts exhausted")
	return report, lastErr
}

// Run is Do for calls that produce a value.
func Run[T any](ctx context.Context, e *Executor, op string, call func(ctx context.Context, token string) (T, error)) (T, Report, error) {
	var out T
	report, err := e.Do(ctx, op, func(ctx context.Context, token string) error {
		v, err := call(ctx, token)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, report, err
	}
	return out, report, nil
}

// Result is the single value delivered by Submit.
type Result[T any] struct {
	Value  T
	Report Report
	Err    error
}

// Submit runs the invocation on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func Submit[T any](ctx context.Context, e *Executor, op string, call func(ctx context.Context, token string) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		v, report, err := Run(ctx, e, op, call)
		ch <- Result[T]{Value: v, Report: report, Err: err}
	}()
	return ch
}
