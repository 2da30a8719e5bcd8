package shell

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// Metric names emitted by the observable handler wrappers and the retry loop.
const (
	CommandHandlerDurationMetric            = "commandhandler_handle_duration_seconds"
	CommandHandlerCallsMetric               = "commandhandler_handle_calls_total"
	CommandHandlerIdempotentMetric          = "commandhandler_idempotent_operations_total"
	CommandHandlerCanceledMetric            = "commandhandler_canceled_operations_total"
	CommandHandlerTimeoutMetric             = "commandhandler_timeout_operations_total"
	CommandHandlerConcurrencyConflictMetric = "commandhandler_concurrency_conflicts_total"

	// CommandHandlerRetriesMetric is labeled with command_type, attempt_number and error_type.
	CommandHandlerRetriesMetric = "commandhandler_retries_total"

	// CommandHandlerRetryDelayMetric is labeled with command_type and, from the retry loop, attempt_number.
	CommandHandlerRetryDelayMetric = "commandhandler_retry_delay_seconds"

	// CommandHandlerMaxRetriesReachedMetric is labeled with command_type and final_error_type.
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"

	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	QueryHandlerCallsMetric    = "queryhandler_handle_calls_total"
	QueryHandlerCanceledMetric = "queryhandler_canceled_operations_total"
	QueryHandlerTimeoutMetric  = "queryhandler_timeout_operations_total"
)

// Status values used as the status label and as business_outcome in logs.
const (
	StatusSuccess             = "success"
	StatusError               = "error"
	StatusIdempotent          = "idempotent" // the records already were in the requested state
	StatusCanceled            = "canceled"
	StatusTimeout             = "timeout"
	StatusConcurrencyConflict = "concurrency_conflict"
)

// Log messages and attribute keys.
const (
	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandFailed    = "command handler failed"
	LogMsgQueryStarted     = "query handler started"
	LogMsgQueryCompleted   = "query handler completed"
	LogMsgQueryFailed      = "query handler failed"

	LogAttrCommandType     = "command_type"
	LogAttrQueryType       = "query_type"
	LogAttrStatus          = "status"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrRetryAttempts   = "retry_attempts"
	LogAttrError           = "error"
)

// The handler layer observes through the same interfaces as the record store.
type (
	MetricsCollector           = recordstore.MetricsCollector
	ContextualMetricsCollector = recordstore.ContextualMetricsCollector
	ContextualLogger           = recordstore.ContextualLogger
	Logger                     = recordstore.Logger
)

// BuildRetryLabels creates the metric labels of one retry.
func BuildRetryLabels(commandType string, attemptNumber int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		"attempt_number":   strconv.Itoa(attemptNumber),
		"error_type":       errorType,
	}
}

// ToMilliseconds converts d to fractional milliseconds.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// ErrorStatus classifies a handler error into the status label.
func ErrorStatus(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, recordstore.ErrConcurrencyConflict):
		return StatusConcurrencyConflict
	default:
		return StatusError
	}
}

var commandOutcomeMetrics = map[string]string{
	StatusIdempotent:          CommandHandlerIdempotentMetric,
	StatusCanceled:            CommandHandlerCanceledMetric,
	StatusTimeout:             CommandHandlerTimeoutMetric,
	StatusConcurrencyConflict: CommandHandlerConcurrencyConflictMetric,
}

var queryOutcomeMetrics = map[string]string{
	StatusCanceled: QueryHandlerCanceledMetric,
	StatusTimeout:  QueryHandlerTimeoutMetric,
}

// RecordCommandMetrics records duration and call count of a handled command.
// Idempotent, canceled, timed out and conflicting commands are also counted on their own metric.
func RecordCommandMetrics(ctx context.Context, collector MetricsCollector, commandType, status string, duration time.Duration) {
	recordHandlerMetrics(ctx, collector, handlerMetrics{
		duration: CommandHandlerDurationMetric,
		calls:    CommandHandlerCallsMetric,
		outcomes: commandOutcomeMetrics,
	}, LogAttrCommandType, commandType, status, duration)
}

// RecordQueryMetrics records duration and call count of a handled query.
// Canceled and timed out queries are also counted on their own metric.
func RecordQueryMetrics(ctx context.Context, collector MetricsCollector, queryType, status string, duration time.Duration) {
	recordHandlerMetrics(ctx, collector, handlerMetrics{
		duration: QueryHandlerDurationMetric,
		calls:    QueryHandlerCallsMetric,
		outcomes: queryOutcomeMetrics,
	}, LogAttrQueryType, queryType, status, duration)
}

// RecordRetryMetrics records the retries a command handler reported in its HandlerResult.
// A single attempt records nothing.
func RecordRetryMetrics(ctx context.Context, collector MetricsCollector, commandType string, result HandlerResult) {
	if collector == nil {
		return
	}

	commandLabels := map[string]string{LogAttrCommandType: commandType}

	if result.RetryAttempts > 1 {
		retryLabels := BuildRetryLabels(commandType, result.RetryAttempts-1, result.LastErrorType)
		incrementCounter(ctx, collector, CommandHandlerRetriesMetric, retryLabels)
		recordDuration(ctx, collector, CommandHandlerRetryDelayMetric, result.TotalRetryDelay, commandLabels)
	}

	if result.RetriesExhausted {
		incrementCounter(ctx, collector, CommandHandlerMaxRetriesReachedMetric, commandLabels)
	}
}

type handlerMetrics struct {
	duration string
	calls    string
	outcomes map[string]string
}

func recordHandlerMetrics(
	ctx context.Context,
	collector MetricsCollector,
	metrics handlerMetrics,
	typeLabel, handlerType, status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := func() map[string]string {
		return map[string]string{typeLabel: handlerType, LogAttrStatus: status}
	}

	recordDuration(ctx, collector, metrics.duration, duration, labels())
	incrementCounter(ctx, collector, metrics.calls, labels())

	if metric, ok := metrics.outcomes[status]; ok {
		incrementCounter(ctx, collector, metric, labels())
	}
}

func recordDuration(ctx context.Context, collector MetricsCollector, metric string, duration time.Duration, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	collector.RecordDuration(metric, duration, labels)
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

// LogCommandStart logs that a command handler was entered.
func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandStarted, LogAttrCommandType, commandType)
}

// LogCommandSuccess logs a handled command with its business outcome and the attempts it took.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	businessOutcome string,
	retryAttempts int,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrRetryAttempts, retryAttempts,
		LogAttrDurationMS, ToMilliseconds(duration),
	)
}

// LogCommandError logs a failed command.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	status string,
	err error,
) {
	logError(ctx, logger, contextualLogger, LogMsgCommandFailed,
		LogAttrCommandType, commandType,
		LogAttrStatus, status,
		LogAttrError, err.Error(),
	)
}

// LogQueryStart logs that a query handler was entered.
func LogQueryStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, queryType string) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryStarted, LogAttrQueryType, queryType)
}

// LogQuerySuccess logs a handled query.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryCompleted,
		LogAttrQueryType, queryType,
		LogAttrDurationMS, ToMilliseconds(duration),
	)
}

// LogQueryError logs a failed query.
func LogQueryError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	status string,
	err error,
) {
	logError(ctx, logger, contextualLogger, LogMsgQueryFailed,
		LogAttrQueryType, queryType,
		LogAttrStatus, status,
		LogAttrError, err.Error(),
	)
}

// logInfo prefers the contextual logger, so trace and request attributes from ctx are kept.
func logInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	switch {
	case contextualLogger != nil:
		contextualLogger.InfoContext(ctx, msg, args...)
	case logger != nil:
		logger.Info(msg, args...)
	}
}

func logError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	switch {
	case contextualLogger != nil:
		contextualLogger.ErrorContext(ctx, msg, args...)
	case logger != nil:
		logger.Error(msg, args...)
	}
}
