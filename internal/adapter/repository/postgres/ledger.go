package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/infrastructure/postgres/generated"
	"github.com/iho/accountledger/internal/usecase"
)

type dbPool interface {
	pgxPool
	generated.DBTX
}

// Ledger implements usecase.Ledger on PostgreSQL. Every mutation is a single
// conditional UPDATE on the account row plus an INSERT of the transaction, in
// one transaction. The row lock taken by the UPDATE serializes writers of the
// same account and nothing else.
type Ledger struct {
	db           dbPool
	txManager    *TxManager
	retrier      *Retrier
	idGen        usecase.IDGenerator
	logger       zerolog.Logger
	now          func() time.Time
	timeout      time.Duration
	historyLimit int32
}

// NewLedger creates a store-backed ledger. Statements return at most
// historyCapacity transactions; every transaction is retained.
func NewLedger(pool *pgxpool.Pool, historyCapacity int, timeout time.Duration, logger zerolog.Logger) *Ledger {
	return newLedgerWithPool(pool, historyCapacity, timeout, logger)
}

func newLedgerWithPool(db dbPool, historyCapacity int, timeout time.Duration, logger zerolog.Logger) *Ledger {
	if historyCapacity < 1 {
		historyCapacity = domain.DefaultHistoryCapacity
	}
	if timeout <= 0 {
		timeout = usecase.DefaultTransactionTimeout
	}

	return &Ledger{
		db:           db,
		txManager:    newTxManagerWithPool(db),
		retrier:      NewRetrier(logger),
		idGen:        NewULIDGenerator(),
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		timeout:      timeout,
		historyLimit: int32(historyCapacity),
	}
}

// Submit applies tx to accountID and returns the committed balance.
func (l *Ledger) Submit(ctx context.Context, accountID string, tx domain.Transaction) (domain.Balance, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var balance domain.Balance
	err := l.retrier.Retry(ctx, func() error {
		var err error
		balance, err = l.submitOnce(ctx, accountID, tx)
		return err
	})
	if err != nil {
		return domain.Balance{}, mapStoreError(err)
	}

	return balance, nil
}

func (l *Ledger) submitOnce(ctx context.Context, accountID string, tx domain.Transaction) (domain.Balance, error) {
	var balance domain.Balance

	err := l.txManager.WithTx(ctx, func(dbTx pgx.Tx) error {
		q := generated.New(dbTx)

		var err error
		balance, err = l.apply(ctx, q, accountID, tx)
		if err != nil {
			return err
		}

		return q.InsertTransaction(ctx, generated.InsertTransactionParams{
			ID:          l.idGen.Generate(),
			AccountID:   accountID,
			Amount:      int64(tx.Amount),
			Kind:        string(tx.Kind),
			Description: tx.Description,
			OccurredAt:  pgtype.Timestamptz{Time: tx.OccurredAt, Valid: true},
		})
	})

	return balance, err
}

// apply runs the conditional balance update for tx.
func (l *Ledger) apply(ctx context.Context, q *generated.Queries, accountID string, tx domain.Transaction) (domain.Balance, error) {
	switch tx.Kind {
	case domain.KindCredit:
		row, err := q.CreditAccount(ctx, generated.CreditAccountParams{
			ID:     accountID,
			Amount: int64(tx.Amount),
		})
		if err != nil {
			return domain.Balance{}, l.explainNoRow(ctx, q, accountID, err)
		}
		return domain.Balance{Balance: domain.Money(row.Balance), Limit: domain.Money(row.CreditLimit)}, nil
	case domain.KindDebit:
		row, err := q.DebitAccount(ctx, generated.DebitAccountParams{
			ID:     accountID,
			Amount: int64(tx.Amount),
		})
		if err != nil {
			return domain.Balance{}, l.explainNoRow(ctx, q, accountID, err)
		}
		return domain.Balance{Balance: domain.Money(row.Balance), Limit: domain.Money(row.CreditLimit)}, nil
	default:
		return domain.Balance{}, &domain.ValidationError{Field: "kind", Reason: domain.ErrInvalidKind}
	}
}

// explainNoRow tells a missing account apart from a refused debit when the
// conditional UPDATE matched nothing.
func (l *Ledger) explainNoRow(ctx context.Context, q *generated.Queries, accountID string, err error) error {
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	exists, err := q.AccountExists(ctx, accountID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrAccountNotFound
	}

	return domain.ErrInsufficientLimit
}

// Statement reads the account and its recent transactions from one snapshot.
func (l *Ledger) Statement(ctx context.Context, accountID string) (*domain.Statement, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	statement, err := l.statement(ctx, accountID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return statement, nil
}

func (l *Ledger) statement(ctx context.Context, accountID string) (*domain.Statement, error) {
	var (
		account generated.Account
		rows    []generated.ListRecentTransactionsRow
	)

	err := l.txManager.WithSnapshot(ctx, func(dbTx pgx.Tx) error {
		q := generated.New(dbTx)

		var err error
		account, err = q.GetAccount(ctx, accountID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		rows, err = q.ListRecentTransactions(ctx, generated.ListRecentTransactionsParams{
			AccountID: accountID,
			Limit:     l.historyLimit,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, domain.Transaction{
			OccurredAt:  row.OccurredAt.Time.UTC(),
			Kind:        domain.TransactionKind(row.Kind),
			Description: row.Description,
			Amount:      domain.Money(row.Amount),
		})
	}

	return &domain.Statement{
		GeneratedAt:  l.now(),
		Transactions: transactions,
		Balance:      domain.Money(account.Balance),
		Limit:        domain.Money(account.CreditLimit),
	}, nil
}

// Reconcile recomputes every balance from the retained transactions.
func (l *Ledger) Reconcile(ctx context.Context) ([]usecase.ReconciliationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	rows, err := generated.New(l.db).ReconcileAccounts(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	checked := l.now()
	results := make([]usecase.ReconciliationResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, usecase.ReconciliationResult{
			LastChecked:       checked,
			AccountID:         row.ID,
			RecordedBalance:   domain.Money(row.Balance),
			CalculatedBalance: domain.Money(row.CalculatedBalance),
		})
	}

	return results, nil
}

// Provision creates missing accounts with a zero balance. Existing accounts
// keep their balance and limit.
func (l *Ledger) Provision(ctx context.Context, specs []domain.AccountSpec) error {
	q := generated.New(l.db)
	created := 0

	for _, spec := range specs {
		if spec.Limit < 0 {
			return fmt.Errorf("account %s: limit must not be negative", spec.ID)
		}

		row, err := q.EnsureAccount(ctx, generated.EnsureAccountParams{
			ID:          spec.ID,
			CreditLimit: int64(spec.Limit),
		})
		if err != nil {
			return fmt.Errorf("provision account %s: %w", spec.ID, mapStoreError(err))
		}

		// An existing row keeps its stored limit; a drifted config must not be silently ignored.
		if row.CreditLimit != int64(spec.Limit) {
			l.logger.Error().
				Str("account_id", spec.ID).
				Int64("stored_limit", row.CreditLimit).
				Int64("configured_limit", int64(spec.Limit)).
				Msg("account limit mismatch")
			return fmt.Errorf("account %s: stored limit %d differs from configured limit %d",
				spec.ID, row.CreditLimit, int64(spec.Limit))
		}

		if row.Created {
			created++
		}
	}

	l.logger.Info().
		Int("accounts", len(specs)).
		Int("created", created).
		Msg("accounts provisioned")

	return nil
}
