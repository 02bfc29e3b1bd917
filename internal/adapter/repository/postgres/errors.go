package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/accountledger/internal/domain"
)

const (
	pgErrNumericOutOfRange    = "22003"
	pgErrCheckViolation       = "23514"
	pgErrLockNotAvailable     = "55P03"
	pgErrQueryCanceled        = "57014"
	pgErrTooManyConnections   = "53300"
	pgErrConnectionClassPrefx = "08"
)

// mapStoreError translates driver errors into domain errors. Errors that are
// already domain errors pass through unchanged.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrInvalidTransaction) ||
		domain.IsBusinessRule(err) ||
		errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgErrNumericOutOfRange:
			return domain.ErrAmountOverflow
		case pgErr.Code == pgErrCheckViolation:
			return domain.ErrInsufficientLimit
		case pgErr.Code == pgErrDeadlock,
			pgErr.Code == pgErrSerializationFailure,
			pgErr.Code == pgErrLockNotAvailable,
			pgErr.Code == pgErrQueryCanceled,
			pgErr.Code == pgErrTooManyConnections,
			strings.HasPrefix(pgErr.Code, pgErrConnectionClassPrefx):
			return unavailable(err)
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		pgconn.Timeout(err) {
		return unavailable(err)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return unavailable(err)
	}

	return err
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
