package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds one store transaction, lock waits included.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// Transaction outcomes used as metric labels.
const (
	OutcomeAccepted          = "accepted"
	OutcomeInvalid           = "invalid"
	OutcomeUnknownAccount    = "unknown_account"
	OutcomeInsufficientLimit = "insufficient_limit"
	OutcomeOverflow          = "overflow"
	OutcomeUnavailable       = "unavailable"
	OutcomeError             = "error"
)
