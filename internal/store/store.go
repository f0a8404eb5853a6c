package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hospital-booking-api/internal/scheduler"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every
// query runs either standalone or inside InTx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Store struct {
	pool *pgxpool.Pool
	q    querier
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

// InTx binds every store call inside fn to a single repeatable-read
// transaction, so the conflict checks and the write after them observe
// one snapshot of the appointments table.
func (s *Store) InTx(ctx context.Context, fn func(scheduler.Store) error) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.RepeatableRead}, func(tx pgx.Tx) error {
		return fn(&Store{pool: s.pool, q: tx})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
