// Package retry wraps cenkalti/backoff into the bounded fetch combinator
// used for reads that may race backend row provisioning: a ledger or
// profile row for a freshly registered user can lag its account row, so
// the first NotFound is treated as transient and retried a fixed number
// of times with a linearly increasing delay before the failure surfaces.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Config bounds a retry loop.
type Config struct {
	// MaxAttempts is the total number of tries, first call included.
	MaxAttempts int
	// Interval is the delay before the first retry; each further retry
	// waits one Interval more than the previous (1x, 2x, 3x, ...).
	Interval time.Duration
}

// DefaultConfig matches the provisioning-race contract: three attempts,
// one second before the first retry.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, Interval: time.Second}
}

// transient marks an error as worth retrying.
type transient struct{ err error }

func (t *transient) Error() string { return t.err.Error() }
func (t *transient) Unwrap() error { return t.err }

// Transient wraps err so Do will retry the operation. Errors not wrapped
// this way abort the loop immediately.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transient{err: err}
}

// IsTransient reports whether err was marked with Transient.
func IsTransient(err error) bool {
	var t *transient
	return errors.As(err, &t)
}

// linearBackOff emits Interval, 2*Interval, 3*Interval, ...
type linearBackOff struct {
	interval time.Duration
	attempt  int
}

func (l *linearBackOff) NextBackOff() time.Duration {
	l.attempt++
	return time.Duration(l.attempt) * l.interval
}

func (l *linearBackOff) Reset() { l.attempt = 0 }

// Do runs op until it succeeds, returns a non-transient error, the attempt
// budget is spent, or ctx is cancelled. The value of the last successful
// call is returned; after cancellation the result is discarded and
// ctx.Err() propagates, so an abandoned caller never sees stale state.
func Do[T any](ctx context.Context, cfg Config, logger *zap.Logger, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}

	attempt := 0
	operation := func() error {
		attempt++
		value, err := op(ctx)
		if err != nil {
			if IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		result = value
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{interval: cfg.Interval}, uint64(cfg.MaxAttempts-1)),
		ctx,
	)
	err := backoff.RetryNotify(operation, b, func(err error, d time.Duration) {
		logger.Warn("Retrying operation",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", d),
			zap.Error(err),
		)
	})
	if err != nil {
		if ctx.Err() != nil {
			var zero T
			return zero, ctx.Err()
		}
		// Unwrap the transient marker before handing the error back.
		var t *transient
		if errors.As(err, &t) {
			return result, t.err
		}
		return result, err
	}

	return result, nil
}
