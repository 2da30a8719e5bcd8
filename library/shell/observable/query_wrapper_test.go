package observable_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/library/shell/observable"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	. "github.com/AntonStoeckl/library-records-go/testutil/postgresengine/helper" //nolint:revive
)

type mockQuery struct{}

func (q mockQuery) QueryType() string {
	return "TestQuery"
}

type mockQueryHandler struct {
	result []string
	err    error
}

func (h mockQueryHandler) Handle(_ context.Context, _ mockQuery) ([]string, error) {
	return h.result, h.err
}

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[mockQuery, []string](
		mockQueryHandler{result: []string{"123456"}},
		observable.WithQueryMetrics[mockQuery, []string](metricsCollector),
		observable.WithQueryContextualLogging[mockQuery, []string](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(t.Context(), mockQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"123456"}, result)
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithLabel("query_type", "TestQuery").
		WithStatus("success").
		Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage("query handler completed").
		WithAttr("query_type", "TestQuery").
		WithDurationMS().
		Assert())
}

func Test_QueryWrapper_Handle_Error(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[mockQuery, []string](
		mockQueryHandler{err: recordstore.ErrStoreUnavailable},
		observable.WithQueryMetrics[mockQuery, []string](metricsCollector),
		observable.WithQueryLogging[mockQuery, []string](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrStoreUnavailable)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithStatus("error").
		Assert())
	assert.True(t, logHandler.HasErrorLogWithMessage("query handler failed").Assert())
}

func Test_QueryWrapper_Handle_Canceled(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewQueryWrapper[mockQuery, []string](
		mockQueryHandler{err: context.Canceled},
		observable.WithQueryMetrics[mockQuery, []string](metricsCollector),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCanceledMetric).
		WithLabel("query_type", "TestQuery").
		Assert())
}
