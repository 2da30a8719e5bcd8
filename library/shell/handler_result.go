package shell

import "time"

// HandlerResult is what a command handler reports next to its error:
// whether the command changed anything and how many transaction attempts it took.
// The observable wrappers turn it into metrics and logs.
type HandlerResult struct {
	Idempotent       bool          // the records already were in the requested state
	RetryAttempts    int           // 1 when the first transaction committed
	TotalRetryDelay  time.Duration // time spent in backoff between attempts
	LastErrorType    string        // "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded" or "other"
	RetriesExhausted bool          // every attempt hit a serialization conflict
}

// NewSuccessResult reports a command that changed the records.
func NewSuccessResult(retry RetryMetrics) HandlerResult {
	return fromRetryMetrics(retry, false)
}

// NewIdempotentResult reports a command that found nothing to change.
func NewIdempotentResult(retry RetryMetrics) HandlerResult {
	return fromRetryMetrics(retry, true)
}

// NewErrorResult keeps the retry metadata of a failed command.
func NewErrorResult(retry RetryMetrics) HandlerResult {
	return fromRetryMetrics(retry, false)
}

func fromRetryMetrics(retry RetryMetrics, idempotent bool) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retry.Attempts,
		TotalRetryDelay:  retry.TotalDelay,
		LastErrorType:    retry.LastErrorType,
		RetriesExhausted: retry.RetriesExhausted,
	}
}
