package postgresengine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	logMsgBuildQueryFailed     = "failed to build sql statement"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database statement execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgBeginTxFailed        = "failed to begin transaction"
	logMsgCommitFailed         = "failed to commit transaction"
	logMsgRollbackFailed       = "failed to roll back transaction"
	logMsgPingFailed           = "database ping failed"
	logMsgTxCommitted          = "transaction committed"
	logMsgConcurrencyConflict  = "concurrency conflict detected"
	logMsgSchemaCreated        = "schema created"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "recordstore operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrOperation           = "operation"
	logAttrDurationMS          = "duration_ms"
	logAttrRowCount            = "row_count"
	logAttrSerialNumber        = "serial_number"
	logAttrCardNumber          = "card_number"
	operationTransact          = "transact"
	operationRead              = "read"
	statusSuccess              = "success"
	statusError                = "error"
	statusCanceled             = "canceled"
	statusConcurrencyConflict  = "concurrency_conflict"
	labelOperation             = "operation"
	labelStatus                = "status"
	labelErrorType             = "error_type"
	metricTransactionDuration  = "recordstore_transaction_duration_seconds"
	metricDatabaseErrors       = "recordstore_database_errors_total"
	metricConcurrencyConflicts = "recordstore_concurrency_conflicts_total"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	} else if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	} else if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical failures at warn level if a logger is configured.
func (s *Store) logWarn(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, allArgs...)
	} else if s.logger != nil {
		s.logger.Warn(message, allArgs...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (s *Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	} else if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Store) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordOutcome records the duration of a finished transaction, labeled with its outcome.
func (s *Store) recordOutcome(ctx context.Context, operation string, err error, duration time.Duration) {
	status := statusSuccess

	switch {
	case err == nil:
	case errors.Is(err, recordstore.ErrConcurrencyConflict):
		status = statusConcurrencyConflict
		s.logOperation(ctx, logMsgConcurrencyConflict, logAttrOperation, operation)
		s.recordConcurrencyConflictMetrics(ctx, operation)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = statusCanceled
	default:
		status = statusError
	}

	s.recordDurationMetrics(ctx, operation, status, duration)
}

// recordDurationMetrics records duration metrics with context if the collector supports it.
func (s *Store) recordDurationMetrics(ctx context.Context, operation, status string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation: operation,
		labelStatus:    status,
	}

	if contextualCollector, ok := s.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricTransactionDuration, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metricTransactionDuration, duration, labels)
	}
}

// recordErrorMetrics records database error metrics with context if the collector supports it.
func (s *Store) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation: operation,
		labelStatus:    statusError,
		labelErrorType: errorType,
	}

	if contextualCollector, ok := s.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// recordConcurrencyConflictMetrics records concurrency conflict metrics if the collector is configured.
func (s *Store) recordConcurrencyConflictMetrics(ctx context.Context, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation:  operation,
		"conflict_type": "serialization",
	}

	if contextualCollector, ok := s.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
	}
}
