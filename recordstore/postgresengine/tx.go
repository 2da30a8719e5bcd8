package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import

	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine/internal/adapters"
)

const dialectPostgres = "postgres"

var errBuildingQueryFailed = errors.New("building sql statement failed")

type sqlQueryString = string

// sqlBuilder is implemented by the goqu datasets used by the stores.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// Tx is one open database transaction of the Store.
// It must not be used after the TxFunc it was handed to has returned.
type Tx struct {
	store *Store
	dbTx  adapters.DBTx
}

// Books returns the book records of this transaction.
func (tx *Tx) Books() BookStore {
	return BookStore{tx: tx}
}

// Users returns the user records of this transaction.
func (tx *Tx) Users() UserStore {
	return UserStore{tx: tx}
}

func (tx *Tx) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// toSQL renders a goqu dataset into an interpolated SQL statement.
func (tx *Tx) toSQL(ctx context.Context, stmt sqlBuilder) (sqlQueryString, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		tx.store.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return "", errors.Join(errBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// query executes a statement which returns rows and hands every row to scan.
func (tx *Tx) query(
	ctx context.Context,
	stmt sqlBuilder,
	action string,
	scan func(rows adapters.DBRows) error,
) (int, error) {

	sqlQuery, buildErr := tx.toSQL(ctx, stmt)
	if buildErr != nil {
		return 0, buildErr
	}

	start := time.Now()
	rows, queryErr := tx.dbTx.Query(ctx, sqlQuery)
	tx.store.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if queryErr != nil {
		classified := classifyDriverError(queryErr)
		tx.store.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		tx.store.recordErrorMetrics(ctx, action, errorTypeOf(classified))

		return 0, classified
	}
	defer tx.closeRows(ctx, rows)

	rowCount := 0

	for rows.Next() {
		if scanErr := scan(rows); scanErr != nil {
			tx.store.logError(ctx, logMsgScanRowFailed, scanErr, logAttrQuery, sqlQuery)
			return 0, classifyDriverError(scanErr)
		}

		rowCount++
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		classified := classifyDriverError(rowsErr)
		tx.store.logError(ctx, logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		tx.store.recordErrorMetrics(ctx, action, errorTypeOf(classified))

		return 0, classified
	}

	return rowCount, nil
}

// exec executes a statement which returns no rows and reports the number of affected rows.
func (tx *Tx) exec(ctx context.Context, stmt sqlBuilder, action string) (int64, error) {
	sqlQuery, buildErr := tx.toSQL(ctx, stmt)
	if buildErr != nil {
		return 0, buildErr
	}

	return tx.execSQL(ctx, sqlQuery, action)
}

func (tx *Tx) execSQL(ctx context.Context, sqlQuery sqlQueryString, action string) (int64, error) {
	start := time.Now()
	result, execErr := tx.dbTx.Exec(ctx, sqlQuery)
	tx.store.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		classified := classifyDriverError(execErr)
		tx.store.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		tx.store.recordErrorMetrics(ctx, action, errorTypeOf(classified))

		return 0, classified
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		tx.store.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, classifyDriverError(rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (tx *Tx) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		tx.store.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}
