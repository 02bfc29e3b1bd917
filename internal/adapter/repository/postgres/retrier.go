package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// Conflict codes a transaction can be replayed after.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// Retrier replays a store transaction that lost a deadlock or
// serialization conflict. Every other error is returned on first sight.
type Retrier struct {
	newBackOff func() backoff.BackOff
	logger     zerolog.Logger
}

// NewRetrier allows up to three replays, 50ms apart at first and never
// more than a second apart.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return newRetrier(logger, 50*time.Millisecond, time.Second, 3)
}

func newRetrier(logger zerolog.Logger, initial, maxInterval time.Duration, maxRetries uint64) *Retrier {
	return &Retrier{
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(initial),
				backoff.WithMaxInterval(maxInterval),
				backoff.WithMaxElapsedTime(0),
			)
			return backoff.WithMaxRetries(b, maxRetries)
		},
		logger: logger,
	}
}

// Retry runs op until it succeeds, fails for good or ctx ends.
func (r *Retrier) Retry(ctx context.Context, op func() error) error {
	attempt := 0

	return backoff.RetryNotify(
		func() error {
			attempt++
			err := op()
			if err != nil && !isRetryableError(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		backoff.WithContext(r.newBackOff(), ctx),
		func(err error, wait time.Duration) {
			r.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("wait", wait).
				Msg("transaction conflict, replaying")
		},
	)
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrDeadlock || pgErr.Code == pgErrSerializationFailure
}
