package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
	BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error)
}

var snapshotTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// TxManager runs functions inside pgx transactions. A transaction commits
// when the function returns nil and rolls back otherwise.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// WithTx runs fn in a read committed transaction.
func (m *TxManager) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	return finish(ctx, tx, fn)
}

// WithSnapshot runs fn in a read-only repeatable read transaction, so every
// query inside it sees the same snapshot.
func (m *TxManager) WithSnapshot(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := m.pool.BeginTx(ctx, snapshotTxOptions)
	if err != nil {
		return err
	}
	return finish(ctx, tx, fn)
}

func finish(ctx context.Context, tx pgx.Tx, fn func(pgx.Tx) error) error {
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
