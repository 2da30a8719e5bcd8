package config

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver
)

const (
	sqlMaxOpenConnections = 50
	sqlMaxIdleConnections = 10
	sqlMaxConnLifetime    = time.Hour
	sqlMaxConnIdleTime    = 5 * time.Minute
)

// PostgresSQLDB opens a lib/pq backed *sql.DB for dsn, sizes its pool and pings it.
func PostgresSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(sqlMaxOpenConnections)
	db.SetMaxIdleConns(sqlMaxIdleConnections)
	db.SetConnMaxLifetime(sqlMaxConnLifetime)
	db.SetConnMaxIdleTime(sqlMaxConnIdleTime)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// PostgresSQLX is PostgresSQLDB wrapped into a *sqlx.DB.
func PostgresSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := PostgresSQLDB(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return sqlx.NewDb(db, "postgres"), nil
}
