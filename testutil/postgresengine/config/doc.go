// Package config provides PostgreSQL database configuration for record store testing.
//
// This package contains factory functions for creating database connections
// using the record store's supported PostgreSQL adapters (pgx.Pool, sql.DB, sqlx.DB)
// with a pre-configured test database DSN.
//
// The DSN can be overridden with the LIBRARY_TEST_DATABASE_DSN environment variable.
package config
