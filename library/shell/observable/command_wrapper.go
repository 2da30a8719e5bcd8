package observable

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-records-go/library/shell"
)

// ErrNilLogger is returned by the logging options when they get a nil logger.
var ErrNilLogger = errors.New("logger must not be nil")

// CommandWrapper adds metrics and logging to any command handler.
// It delegates all business logic to the wrapped handler.
type CommandWrapper[C shell.Command] struct {
	coreHandler      shell.CoreCommandHandler[C]
	commandType      string
	metricsCollector shell.MetricsCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewCommandWrapper creates a new observable wrapper around the core command handler.
func NewCommandWrapper[C shell.Command](
	coreHandler shell.CoreCommandHandler[C],
	opts ...CommandOption[C],
) (*CommandWrapper[C], error) {
	// command types are constants, so a zero value is enough
	var zeroCommand C

	wrapper := &CommandWrapper[C]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle delegates to the wrapped handler and translates its HandlerResult into metrics and logs.
func (w *CommandWrapper[C]) Handle(ctx context.Context, command C) (shell.HandlerResult, error) {
	commandStart := time.Now()
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)

	shell.RecordRetryMetrics(ctx, w.metricsCollector, w.commandType, result)

	duration := time.Since(commandStart)
	if err != nil {
		status := shell.ErrorStatus(err)
		shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
		shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, status, err)

		return result, err
	}

	businessOutcome := shell.StatusSuccess
	if result.Idempotent {
		businessOutcome = shell.StatusIdempotent
	}

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, businessOutcome, duration)
	shell.LogCommandSuccess(ctx, w.logger, w.contextualLogger, w.commandType, businessOutcome, result.RetryAttempts, duration)

	return result, nil
}

// CommandOption defines a functional option for configuring CommandWrapper.
type CommandOption[C shell.Command] func(*CommandWrapper[C]) error

// WithCommandMetrics sets the metrics collector for the CommandWrapper.
func WithCommandMetrics[C shell.Command](collector shell.MetricsCollector) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		if collector == nil {
			return shell.ErrNilMetricsCollector
		}

		w.metricsCollector = collector

		return nil
	}
}

// WithCommandContextualLogging sets the contextual logger for the CommandWrapper.
func WithCommandContextualLogging[C shell.Command](logger shell.ContextualLogger) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		if logger == nil {
			return ErrNilLogger
		}

		w.contextualLogger = logger

		return nil
	}
}

// WithCommandLogging sets the basic logger for the CommandWrapper.
func WithCommandLogging[C shell.Command](logger shell.Logger) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		if logger == nil {
			return ErrNilLogger
		}

		w.logger = logger

		return nil
	}
}
