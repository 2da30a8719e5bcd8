package helper

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/samber/lo"
)

type metricKind int

const (
	durationMetric metricKind = iota
	counterMetric
	valueMetric
)

type spyRecord struct {
	kind     metricKind
	metric   string
	duration time.Duration
	value    float64
	labels   map[string]string
}

// MetricsCollectorSpy captures metrics calls in memory so tests can assert on them.
// It implements both the plain and the context-aware collector interface.
type MetricsCollectorSpy struct {
	mu          sync.Mutex
	records     []spyRecord
	recordCalls bool
}

// NewMetricsCollectorSpy creates a spy; with recordCalls false it swallows every call.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{recordCalls: recordCalls}
}

func (s *MetricsCollectorSpy) capture(record spyRecord) {
	if !s.recordCalls {
		return
	}

	record.labels = maps.Clone(record.labels)

	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.capture(spyRecord{kind: durationMetric, metric: metric, duration: duration, labels: labels})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.capture(spyRecord{kind: counterMetric, metric: metric, labels: labels})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.capture(spyRecord{kind: valueMetric, metric: metric, value: value, labels: labels})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// Reset drops everything captured so far.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

// HasDurationRecordForMetric starts a matcher over the durations recorded for metric.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(durationMetric, metric)
}

// HasCounterRecordForMetric starts a matcher over the counter increments recorded for metric.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(counterMetric, metric)
}

func (s *MetricsCollectorSpy) matcher(kind metricKind, metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matching := lo.Filter(s.records, func(record spyRecord, _ int) bool {
		return record.kind == kind && record.metric == metric
	})

	return &MetricRecordMatcher{
		candidates: lo.Map(matching, func(record spyRecord, _ int) map[string]string { return record.labels }),
	}
}

// MetricRecordMatcher narrows the captured records label by label.
// Assert is true while at least one record matches every label given so far.
type MetricRecordMatcher struct {
	candidates []map[string]string
}

func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

func (m *MetricRecordMatcher) WithErrorType(errorType string) *MetricRecordMatcher {
	return m.WithLabel("error_type", errorType)
}

func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	m.candidates = lo.Filter(m.candidates, func(labels map[string]string, _ int) bool {
		labelValue, exists := labels[key]
		return exists && labelValue == value
	})

	return m
}

func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
