// Package postgreswrapper provides test utilities for abstracting over different PostgreSQL database adapters.
//
// This package enables testing of the record store and everything built on top of it across multiple
// database drivers (pgx, sql.DB, sqlx.DB) using a common Wrapper interface. The specific adapter type
// is determined by the ADAPTER_TYPE environment variable, allowing the same test suite to run against
// different database implementations.
//
// Every test package uses its own table prefix, so packages can run in parallel against one database.
//
// Usage:
//
//	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, "changebookstatus")
//	defer wrapper.Close()
//
//	// Clean up between tests
//	postgreswrapper.CleanUp(t, wrapper)
//
//	store := wrapper.GetStore()
package postgreswrapper
