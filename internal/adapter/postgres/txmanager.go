package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs callbacks inside a single transaction carried through the
// context, at the Read Committed level PostgreSQL defaults to. Nesting
// RunInTx calls is not supported: the inner call would open a second,
// independent transaction.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager wraps the pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx begins a transaction, stores it in the context for the
// repositories to pick up, and commits if fn returns nil. Any error or
// panic from fn rolls the transaction back; the deferred rollback is a
// no-op once the commit has happened.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
