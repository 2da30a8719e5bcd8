package postgresengine

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName = "books"
	defaultUsersTableName = "users"
)

// TxFunc is a unit of work executed inside one database transaction.
// Returning an error rolls the transaction back.
type TxFunc func(ctx context.Context, tx *Tx) error

// Store is the PostgreSQL backed record store for books and users.
// It leverages a database adapter and supports customizable logging, metrics, and table names.
type Store struct {
	db               adapters.DBAdapter
	booksTableName   string
	usersTableName   string
	logger           recordstore.Logger
	contextualLogger recordstore.ContextualLogger
	metricsCollector recordstore.MetricsCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary and a replica pgx Pool.
// Read-only transactions run on the replica when the context asks for eventual consistency.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

// NewStoreFromSQLXAndReplica creates a new Store using a primary and a replica sqlx.DB.
// Read-only transactions run on the replica when the context asks for eventual consistency.
func NewStoreFromSQLXAndReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapterWithReplica(db, replica), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:             db,
		booksTableName: defaultBooksTableName,
		usersTableName: defaultUsersTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Transact runs fn inside one SERIALIZABLE read-write transaction on the primary database.
// The transaction is committed if fn returns nil and rolled back otherwise.
//
// Serialization failures surface as recordstore.ErrConcurrencyConflict, the caller may retry the whole unit of work.
func (s *Store) Transact(ctx context.Context, fn TxFunc) error {
	return s.runInTx(ctx, false, fn)
}

// Read runs fn inside one read-only transaction.
// With recordstore.WithEventualConsistency the transaction may run on a replica.
func (s *Store) Read(ctx context.Context, fn TxFunc) error {
	return s.runInTx(ctx, true, fn)
}

// Ping checks that the primary database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		s.logError(ctx, logMsgPingFailed, err)
		return classifyDriverError(err)
	}

	return nil
}

func (s *Store) runInTx(ctx context.Context, readOnly bool, fn TxFunc) error {
	operation := operationTransact
	if readOnly {
		operation = operationRead
	}

	start := time.Now()

	dbTx, beginErr := s.db.BeginTx(ctx, readOnly)
	if beginErr != nil {
		classified := classifyDriverError(beginErr)
		s.logError(ctx, logMsgBeginTxFailed, beginErr, logAttrOperation, operation)
		s.recordErrorMetrics(ctx, operation, errorTypeOf(classified))
		s.recordDurationMetrics(ctx, operation, statusError, time.Since(start))

		return classified
	}

	tx := &Tx{store: s, dbTx: dbTx}
	defer s.rollback(ctx, dbTx) // no-op after a successful commit

	if fnErr := fn(ctx, tx); fnErr != nil {
		s.recordOutcome(ctx, operation, fnErr, time.Since(start))
		return fnErr
	}

	if commitErr := dbTx.Commit(ctx); commitErr != nil {
		classified := classifyDriverError(commitErr)
		s.logError(ctx, logMsgCommitFailed, commitErr, logAttrOperation, operation)
		s.recordErrorMetrics(ctx, operation, errorTypeOf(classified))
		s.recordOutcome(ctx, operation, classified, time.Since(start))

		return classified
	}

	duration := time.Since(start)
	s.recordOutcome(ctx, operation, nil, duration)
	s.logOperation(ctx, logMsgTxCommitted, logAttrOperation, operation, logAttrDurationMS, s.toMilliseconds(duration))

	return nil
}

func (s *Store) rollback(ctx context.Context, dbTx adapters.DBTx) {
	// the caller's context may already be canceled
	if err := dbTx.Rollback(context.WithoutCancel(ctx)); err != nil {
		s.logWarn(ctx, logMsgRollbackFailed, err)
	}
}
