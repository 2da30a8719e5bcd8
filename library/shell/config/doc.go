// Package config provides the runtime configuration of the library records service
// and database connection helpers for PostgreSQL.
//
// Settings are read from the environment, optionally backed by a .env file.
// The factory functions create database connections using different PostgreSQL
// drivers (pgx.Pool, sql.DB, sqlx.DB) with pre-configured pool settings.
//
// This package is part of the shell (infrastructure) layer.
package config
