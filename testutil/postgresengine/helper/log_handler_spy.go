package helper

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/samber/lo"
)

// LogHandlerSpy is a slog.Handler that keeps every record it gets, so tests can assert on log output.
type LogHandlerSpy struct {
	mu      sync.Mutex
	records []slog.Record
	echo    slog.Handler // nil unless the records should also be printed
}

// NewLogHandlerSpy creates a LogHandlerSpy. With logToStdout it also prints each record as JSON,
// which helps when debugging a failing test.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	spy := &LogHandlerSpy{}
	if logToStdout {
		spy.echo = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return spy
}

func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	s.records = append(s.records, record.Clone())
	s.mu.Unlock()

	if s.echo != nil {
		return s.echo.Handle(ctx, record)
	}

	return nil
}

func (s *LogHandlerSpy) Enabled(context.Context, slog.Level) bool { return true }

func (s *LogHandlerSpy) WithAttrs([]slog.Attr) slog.Handler { return s }

func (s *LogHandlerSpy) WithGroup(string) slog.Handler { return s }

// GetRecordCount returns how many records were captured.
func (s *LogHandlerSpy) GetRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Reset drops everything captured so far.
func (s *LogHandlerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

func (s *LogHandlerSpy) HasDebugLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.matcher(slog.LevelDebug, message)
}

func (s *LogHandlerSpy) HasInfoLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.matcher(slog.LevelInfo, message)
}

func (s *LogHandlerSpy) HasErrorLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.matcher(slog.LevelError, message)
}

func (s *LogHandlerSpy) matcher(level slog.Level, message string) *SpyLogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &SpyLogRecordMatcher{
		candidates: lo.Filter(s.records, func(record slog.Record, _ int) bool {
			return record.Level == level && record.Message == message
		}),
	}
}

// SpyLogRecordMatcher narrows the captured records attribute by attribute.
// Assert is true while at least one record matches everything given so far.
type SpyLogRecordMatcher struct {
	candidates []slog.Record
}

// WithDurationMS keeps the records carrying a non-negative duration_ms.
func (m *SpyLogRecordMatcher) WithDurationMS() *SpyLogRecordMatcher {
	return m.withAttrMatching(func(attr slog.Attr) bool {
		if attr.Key != "duration_ms" {
			return false
		}

		switch attr.Value.Kind() {
		case slog.KindInt64:
			return attr.Value.Int64() >= 0
		case slog.KindFloat64:
			return attr.Value.Float64() >= 0
		default:
			return false
		}
	})
}

// WithAttr keeps the records carrying key with the given value in its string form.
func (m *SpyLogRecordMatcher) WithAttr(key, value string) *SpyLogRecordMatcher {
	return m.withAttrMatching(func(attr slog.Attr) bool {
		return attr.Key == key && attr.Value.String() == value
	})
}

func (m *SpyLogRecordMatcher) withAttrMatching(matches func(attr slog.Attr) bool) *SpyLogRecordMatcher {
	m.candidates = lo.Filter(m.candidates, func(record slog.Record, _ int) bool {
		found := false
		record.Attrs(func(attr slog.Attr) bool {
			found = matches(attr)
			return !found
		})

		return found
	})

	return m
}

func (m *SpyLogRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
