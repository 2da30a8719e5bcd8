// Package helper provides testing utilities, fixtures, and observability spies for record store testing.
//
// This package contains shared testing infrastructure including a slog handler spy
// and a metrics collector spy for validating observability output during tests,
// and fixture functions to arrange books, users, and lendings in the database.
package helper
