package postgresengine

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithBooksTableName sets the table name for book records.
func WithBooksTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return recordstore.ErrEmptyTableName
		}

		s.booksTableName = tableName

		return nil
	}
}

// WithUsersTableName sets the table name for user records.
func WithUsersTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return recordstore.ErrEmptyTableName
		}

		s.usersTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Transaction outcomes and durations (production-safe)
// Warn level: Non-critical issues like failed rollbacks or closing rows
// Error level: Critical failures that cause operation failures.
func WithLogger(logger recordstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// If both loggers are configured, the contextual logger takes precedence.
func WithContextualLogger(logger recordstore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// The collector will receive transaction durations, database errors, and concurrency conflicts.
func WithMetrics(collector recordstore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}
