package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB
type SQLXAdapter struct {
	db        *sqlx.DB
	replicaDB *sqlx.DB // optional replica for read-only transactions
}

// NewSQLXAdapter creates a new SQLX adapter
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// NewSQLXAdapterWithReplica creates a new SQLX adapter with a primary and a replica database.
func NewSQLXAdapterWithReplica(db *sqlx.DB, replica *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db, replicaDB: replica}
}

// BeginTx starts a transaction, on the replica if the context allows it for a read-only transaction.
func (s *SQLXAdapter) BeginTx(ctx context.Context, readOnly bool) (DBTx, error) {
	db := s.db

	if useReplica(ctx, readOnly, s.replicaDB != nil) {
		db = s.replicaDB
	}

	tx, err := db.BeginTxx(ctx, stdTxOptions(readOnly))
	if err != nil {
		return nil, err
	}
	return &sqlxTx{tx: tx}, nil
}

// Ping checks the connection to the primary database.
func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type sqlxTx struct {
	tx *sqlx.Tx
}

// Query executes a query using the sqlx.Tx and returns wrapped rows.
func (s *sqlxTx) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &stdRows{rows: rows}, nil
}

// Exec executes a statement using the sqlx.Tx and returns wrapped result.
func (s *sqlxTx) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.tx.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &stdResult{result: result}, nil
}

func (s *sqlxTx) Commit(_ context.Context) error {
	return s.tx.Commit()
}

func (s *sqlxTx) Rollback(_ context.Context) error {
	return ignoreTxDone(s.tx.Rollback())
}
