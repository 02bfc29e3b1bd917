package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/accountledger/internal/domain"
)

// TransactionUseCase handles transaction and statement business logic.
type TransactionUseCase struct {
	ledger  Ledger
	metrics MetricsRecorder
	logger  zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(ledger Ledger, metrics MetricsRecorder, logger zerolog.Logger) *TransactionUseCase {
	return &TransactionUseCase{
		ledger:  ledger,
		metrics: metrics,
		logger:  logger,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	OccurredAt  *time.Time
	AccountID   string
	Kind        string
	Description string
	Amount      int64
}

// CreateTransaction validates the input and applies it to one account.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (domain.Balance, error) {
	start := time.Now()
	kind := domain.TransactionKind(input.Kind)

	var occurredAt time.Time
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	tx, err := domain.NewTransaction(input.Amount, kind, input.Description, occurredAt)
	if err != nil {
		uc.observe(kind, OutcomeInvalid, domain.Money(input.Amount), start)
		return domain.Balance{}, err
	}

	balance, err := uc.ledger.Submit(ctx, input.AccountID, tx)
	if err != nil {
		outcome, mapped := uc.classify(err)
		uc.observe(kind, outcome, tx.Amount, start)

		log := uc.logger.With().
			Str("account_id", input.AccountID).
			Str("kind", string(kind)).
			Int64("amount", int64(tx.Amount)).
			Str("outcome", outcome).
			Logger()

		switch outcome {
		case OutcomeInsufficientLimit, OutcomeOverflow, OutcomeUnknownAccount:
			log.Info().Err(err).Msg("transaction refused")
		default:
			log.Error().Err(err).Msg("transaction failed")
		}

		return domain.Balance{}, mapped
	}

	uc.observe(kind, OutcomeAccepted, tx.Amount, start)
	uc.metrics.SetBalance(input.AccountID, balance.Balance)

	uc.logger.Debug().
		Str("account_id", input.AccountID).
		Str("kind", string(kind)).
		Int64("amount", int64(tx.Amount)).
		Int64("balance", int64(balance.Balance)).
		Msg("transaction accepted")

	return balance, nil
}

// GetStatement returns the account statement.
func (uc *TransactionUseCase) GetStatement(ctx context.Context, accountID string) (*domain.Statement, error) {
	statement, err := uc.ledger.Statement(ctx, accountID)
	if err != nil {
		outcome, mapped := uc.classify(err)
		uc.metrics.ObserveStatement(outcome)

		if outcome != OutcomeUnknownAccount {
			uc.logger.Error().Err(err).Str("account_id", accountID).Msg("statement failed")
		}

		return nil, mapped
	}

	uc.metrics.ObserveStatement(OutcomeAccepted)
	uc.metrics.SetBalance(accountID, statement.Balance)

	return statement, nil
}

// classify maps a ledger error to a metric outcome and the error returned to
// callers. Unknown faults are replaced by ErrInternal.
func (uc *TransactionUseCase) classify(err error) (string, error) {
	switch {
	case errors.Is(err, domain.ErrInvalidTransaction):
		return OutcomeInvalid, err
	case errors.Is(err, domain.ErrAccountNotFound):
		return OutcomeUnknownAccount, domain.ErrAccountNotFound
	case errors.Is(err, domain.ErrInsufficientLimit):
		return OutcomeInsufficientLimit, domain.ErrInsufficientLimit
	case errors.Is(err, domain.ErrAmountOverflow):
		return OutcomeOverflow, domain.ErrAmountOverflow
	case errors.Is(err, domain.ErrStoreUnavailable):
		return OutcomeUnavailable, domain.ErrStoreUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeUnavailable, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	default:
		return OutcomeError, domain.ErrInternal
	}
}

func (uc *TransactionUseCase) observe(kind domain.TransactionKind, outcome string, amount domain.Money, start time.Time) {
	uc.metrics.ObserveTransaction(kind, outcome, amount, time.Since(start))
}
