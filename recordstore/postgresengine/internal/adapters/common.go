package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// useReplica reports whether a transaction may run on a replica.
func useReplica(ctx context.Context, readOnly bool, hasReplica bool) bool {
	return readOnly && hasReplica && recordstore.GetConsistencyLevel(ctx) == recordstore.EventualConsistency
}

// stdTxOptions builds the database/sql transaction options for sql.DB and sqlx.DB.
func stdTxOptions(readOnly bool) *sql.TxOptions {
	if readOnly {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}

	return &sql.TxOptions{Isolation: sql.LevelSerializable}
}

// stdRows wraps standard library sql.Rows to implement DBRows interface.
type stdRows struct {
	rows *sql.Rows
}

// Next advances to the next row.
func (s *stdRows) Next() bool {
	return s.rows.Next()
}

// Scan copies row values into provided destinations.
func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

// Err returns the error, if any, that was encountered during iteration.
func (s *stdRows) Err() error {
	return s.rows.Err()
}

// Close closes the rows iterator.
func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult interface.
type stdResult struct {
	result sql.Result
}

// RowsAffected returns the number of rows affected by the command.
func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

// ignoreTxDone treats a rollback after commit as a no-op.
func ignoreTxDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}

	return err
}
