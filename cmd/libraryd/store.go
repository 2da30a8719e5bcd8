package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/library-records-go/library/shell/config"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// openStore connects to PostgreSQL with the configured adapter and returns the store and a closer.
// A replica is used for eventually consistent reads if configured, the sql.DB adapter has no replica support.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*postgresengine.Store, func(), error) {
	options := []postgresengine.Option{postgresengine.WithContextualLogger(logger)}

	switch cfg.AdapterType {
	case config.AdapterPGXPool:
		return openPGXPoolStore(ctx, cfg, options)

	case config.AdapterSQLDB:
		db, err := config.PostgresSQLDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}

		if cfg.HasReplica() {
			logger.Warn("replica is not supported by the sqldb adapter, reading from primary")
		}

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case config.AdapterSQLX:
		return openSQLXStore(ctx, cfg, options)

	default:
		return nil, nil, fmt.Errorf("unsupported adapter type %q", cfg.AdapterType)
	}
}

func openPGXPoolStore(ctx context.Context, cfg config.Config, options []postgresengine.Option) (*postgresengine.Store, func(), error) {
	pool, err := config.PostgresPGXPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.HasReplica() {
		store, storeErr := postgresengine.NewStoreFromPGXPool(pool, options...)
		if storeErr != nil {
			pool.Close()
			return nil, nil, storeErr
		}

		return store, pool.Close, nil
	}

	replica, err := config.PostgresPGXPool(ctx, cfg.ReplicaDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("replica: %w", err)
	}

	closeAll := func() {
		replica.Close()
		pool.Close()
	}

	store, err := postgresengine.NewStoreFromPGXPoolAndReplica(pool, replica, options...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return store, closeAll, nil
}

func openSQLXStore(ctx context.Context, cfg config.Config, options []postgresengine.Option) (*postgresengine.Store, func(), error) {
	db, err := config.PostgresSQLX(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.HasReplica() {
		store, storeErr := postgresengine.NewStoreFromSQLX(db, options...)
		if storeErr != nil {
			_ = db.Close()
			return nil, nil, storeErr
		}

		return store, func() { _ = db.Close() }, nil
	}

	replica, err := config.PostgresSQLX(ctx, cfg.ReplicaDSN)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("replica: %w", err)
	}

	closeAll := func() {
		_ = replica.Close()
		_ = db.Close()
	}

	store, err := postgresengine.NewStoreFromSQLXAndReplica(db, replica, options...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return store, closeAll, nil
}
