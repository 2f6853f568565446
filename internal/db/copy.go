package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RowValuer is any normalized row that can express itself in COPY column order.
type RowValuer interface {
	CopyValues() []any
}

// SliceSource implements pgx.CopyFromSource over an in-memory batch of
// normalized rows. Imports are small enough per domain to stage in memory.
type SliceSource[T RowValuer] struct {
	rows []T
	idx  int
}

// NewSliceSource creates a CopyFromSource over rows.
func NewSliceSource[T RowValuer](rows []T) *SliceSource[T] {
	return &SliceSource[T]{rows: rows}
}

// Next advances to the next row.
func (s *SliceSource[T]) Next() bool {
	if s.idx >= len(s.rows) {
		return false
	}
	s.idx++
	return true
}

// Values returns the current row's values in COPY column order.
func (s *SliceSource[T]) Values() ([]any, error) {
	return s.rows[s.idx-1].CopyValues(), nil
}

// Err returns any error encountered during iteration.
func (s *SliceSource[T]) Err() error {
	return nil
}

// CopyRows bulk-loads a batch into table via the COPY protocol and returns
// the number of rows written.
func CopyRows[T RowValuer](ctx context.Context, pool *pgxpool.Pool, table pgx.Identifier, columns []string, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return pool.CopyFrom(ctx, table, columns, NewSliceSource(rows))
}
