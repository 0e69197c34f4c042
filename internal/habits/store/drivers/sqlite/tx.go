package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  gen.New(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer pool stays open

// Ping is a no-op, the transaction already holds a live connection.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Stats() sql.DBStats { return sql.DBStats{} }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users           { return &usersRepo{q: t.q} }
func (t *txStore) Categories() store.Categories { return &categoriesRepo{q: t.q} }
func (t *txStore) Habits() store.Habits         { return &habitsRepo{q: t.q} }
func (t *txStore) CheckIns() store.CheckIns     { return &checkInsRepo{q: t.q} }
func (t *txStore) Goals() store.Goals           { return &goalsRepo{q: t.q} }
func (t *txStore) GoalSteps() store.GoalSteps   { return &goalStepsRepo{q: t.q} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx is opened
