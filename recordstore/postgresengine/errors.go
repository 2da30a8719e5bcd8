package postgresengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	sqlStateUniqueViolation       = "23505"
	sqlStateForeignKeyViolation   = "23503"
	sqlStateCheckViolation        = "23514"
	sqlStateStringDataTruncation  = "22001"
	sqlStateSerializationFailure  = "40001"
	sqlStateDeadlockDetected      = "40P01"
	errorTypeDuplicateKey         = "duplicate_key"
	errorTypeForeignKey           = "foreign_key_violation"
	errorTypeInvalidData          = "invalid_data"
	errorTypeConcurrencyConflict  = "concurrency_conflict"
	errorTypeDatabaseUnavailable  = "database_unavailable"
	errorTypeUnclassifiedDatabase = "database_error"
)

// sqlState extracts the SQLSTATE code from a pgx or lib/pq error, or returns an empty string.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// driverError returns the pgx or lib/pq error inside err, or err itself.
func driverError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr
	}

	return err
}

// classifyDriverError maps a driver error onto the recordstore error taxonomy.
// The driver error stays in the chain, so callers can still inspect it with errors.As.
func classifyDriverError(err error) error {
	switch sqlState(err) {
	case sqlStateUniqueViolation:
		return errors.Join(recordstore.ErrDuplicateKey, err)

	case sqlStateForeignKeyViolation:
		return errors.Join(recordstore.ErrUserNotFound, err)

	case sqlStateCheckViolation, sqlStateStringDataTruncation:
		return errors.Join(recordstore.ErrInvalidRequest, err)

	case sqlStateSerializationFailure, sqlStateDeadlockDetected:
		return errors.Join(recordstore.ErrConcurrencyConflict, err)

	default:
		return errors.Join(recordstore.ErrStoreUnavailable, err)
	}
}

// errorTypeOf returns the metrics label for a classified error.
func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, recordstore.ErrDuplicateKey):
		return errorTypeDuplicateKey
	case errors.Is(err, recordstore.ErrUserNotFound):
		return errorTypeForeignKey
	case errors.Is(err, recordstore.ErrInvalidRequest):
		return errorTypeInvalidData
	case errors.Is(err, recordstore.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case sqlState(err) == "":
		return errorTypeDatabaseUnavailable
	default:
		return errorTypeUnclassifiedDatabase
	}
}
