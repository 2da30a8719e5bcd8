// Package postgresengine provides a PostgreSQL implementation of the library record store.
//
// The Store runs every unit of work inside one database transaction: Transact for
// reads and writes (SERIALIZABLE isolation), Read for read-only work (REPEATABLE READ,
// optionally routed to a replica). Inside the transaction, the Tx hands out a BookStore
// and a UserStore which operate on the same connection, so reads observe earlier writes
// of the same unit of work.
//
// Supported database adapters:
//   - pgx/v5 connection pools (recommended for performance), optionally with a replica pool
//   - database/sql connections with lib/pq driver
//   - sqlx database connections, optionally with a replica
//
// Key features:
//   - Atomic borrow/return transitions with row locks (SELECT ... FOR UPDATE)
//   - Referential integrity between books and users enforced by the schema
//   - Classification of driver errors into the recordstore error taxonomy
//   - Optional structured logging (SQL at debug level, operations at info level)
//   - Optional metrics collection
//
// Usage:
//
//	store, err := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//
//	err = store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
//		book, found, err := tx.Books().GetForUpdate(ctx, serial)
//		// decide ...
//		return tx.Books().SaveLending(ctx, serial, lending)
//	})
package postgresengine
