package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/library/shell/observable"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	. "github.com/AntonStoeckl/library-records-go/testutil/postgresengine/helper" //nolint:revive
)

type mockCommand struct {
	Serial string
}

func (c mockCommand) CommandType() string {
	return "TestCommand"
}

type mockCommandHandler struct {
	mu     sync.Mutex
	calls  []mockCommand
	result shell.HandlerResult
	err    error
}

func newMockCommandHandler(result shell.HandlerResult, err error) *mockCommandHandler {
	return &mockCommandHandler{result: result, err: err}
}

func (h *mockCommandHandler) Handle(_ context.Context, command mockCommand) (shell.HandlerResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, command)

	return h.result, h.err
}

func (h *mockCommandHandler) GetCalls() []mockCommand {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]mockCommand(nil), h.calls...)
}

func Test_CommandWrapper_Handle_Success_NonIdempotent(t *testing.T) {
	// arrange
	expectedResult := shell.HandlerResult{RetryAttempts: 1, LastErrorType: "none"}
	handler := newMockCommandHandler(expectedResult, nil)
	metricsCollector := NewMetricsCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
		observable.WithCommandContextualLogging[mockCommand](slog.New(logHandler)),
	)
	require.NoError(t, err)

	command := mockCommand{Serial: "123456"}

	// act
	result, err := wrapper.Handle(t.Context(), command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, expectedResult, result)
	assert.Equal(t, []mockCommand{command}, handler.GetCalls())

	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("success").
		Assert())
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("success").
		Assert())
	assert.False(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).Assert())

	assert.True(t, logHandler.HasInfoLogWithMessage("command handler started").
		WithAttr("command_type", "TestCommand").
		Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage("command handler completed").
		WithAttr("business_outcome", "success").
		WithDurationMS().
		Assert())
}

func Test_CommandWrapper_Handle_Success_Idempotent(t *testing.T) {
	// arrange
	expectedResult := shell.HandlerResult{Idempotent: true, RetryAttempts: 1}
	metricsCollector := NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		newMockCommandHandler(expectedResult, nil),
		observable.WithCommandMetrics[mockCommand](metricsCollector),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(t.Context(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerIdempotentMetric).
		WithLabel("command_type", "TestCommand").
		Assert())
}

func Test_CommandWrapper_Handle_WithRetries_RecordsMetrics(t *testing.T) {
	// arrange
	resultWithRetries := shell.HandlerResult{
		RetryAttempts:    3,
		TotalRetryDelay:  15 * time.Millisecond,
		LastErrorType:    "concurrency_conflict",
		RetriesExhausted: true,
	}
	metricsCollector := NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		newMockCommandHandler(resultWithRetries, recordstore.ErrConcurrencyConflict),
		observable.WithCommandMetrics[mockCommand](metricsCollector),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrConcurrencyConflict)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel("command_type", "TestCommand").
		WithLabel("attempt_number", "2").
		Assert())
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).
		WithLabel("command_type", "TestCommand").
		Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).
		WithLabel("command_type", "TestCommand").
		Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerConcurrencyConflictMetric).
		WithStatus("concurrency_conflict").
		Assert())
}

func Test_CommandWrapper_Handle_Error_RecordsFailureMetrics(t *testing.T) {
	tests := []struct {
		name           string
		handlerErr     error
		expectedStatus string
	}{
		{name: "business error", handlerErr: recordstore.ErrBookAlreadyBorrowed, expectedStatus: "error"},
		{name: "canceled", handlerErr: errors.Join(recordstore.ErrStoreUnavailable, context.Canceled), expectedStatus: "canceled"},
		{name: "timeout", handlerErr: context.DeadlineExceeded, expectedStatus: "timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			metricsCollector := NewMetricsCollectorSpy(true)
			logHandler := NewLogHandlerSpy(false)

			wrapper, err := observable.NewCommandWrapper[mockCommand](
				newMockCommandHandler(shell.HandlerResult{RetryAttempts: 1}, tc.handlerErr),
				observable.WithCommandMetrics[mockCommand](metricsCollector),
				observable.WithCommandLogging[mockCommand](slog.New(logHandler)),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(t.Context(), mockCommand{})

			// assert
			assert.ErrorIs(t, err, tc.handlerErr)
			assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
				WithStatus(tc.expectedStatus).
				Assert())
			assert.True(t, logHandler.HasErrorLogWithMessage("command handler failed").
				WithAttr("status", tc.expectedStatus).
				Assert())
		})
	}
}

func Test_CommandWrapper_Handle_WithoutObservability(t *testing.T) {
	// arrange
	wrapper, err := observable.NewCommandWrapper[mockCommand](newMockCommandHandler(shell.HandlerResult{}, nil))
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), mockCommand{})

	// assert
	assert.NoError(t, err)
}

func Test_NewCommandWrapper_RejectsNilDependencies(t *testing.T) {
	handler := newMockCommandHandler(shell.HandlerResult{}, nil)

	_, err := observable.NewCommandWrapper[mockCommand](handler, observable.WithCommandMetrics[mockCommand](nil))
	assert.ErrorIs(t, err, shell.ErrNilMetricsCollector)

	_, err = observable.NewCommandWrapper[mockCommand](handler, observable.WithCommandLogging[mockCommand](nil))
	assert.ErrorIs(t, err, observable.ErrNilLogger)

	_, err = observable.NewCommandWrapper[mockCommand](handler, observable.WithCommandContextualLogging[mockCommand](nil))
	assert.ErrorIs(t, err, observable.ErrNilLogger)
}
