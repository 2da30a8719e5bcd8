package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
	"github.com/AntonStoeckl/library-records-go/testutil/postgresengine/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

// Wrapper interface to abstract over different engine types
type Wrapper interface {
	GetStore() *postgresengine.Store
	BooksTableName() string
	UsersTableName() string
	Close()
}

type tables struct {
	books string
	users string
}

func (t tables) BooksTableName() string {
	return t.books
}

func (t tables) UsersTableName() string {
	return t.users
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	tables
	pool  *pgxpool.Pool
	store *postgresengine.Store
}

func (e *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return e.store
}

func (e *PGXPoolWrapper) Close() {
	e.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	tables
	db    *sql.DB
	store *postgresengine.Store
}

func (e *SQLDBWrapper) GetStore() *postgresengine.Store {
	return e.store
}

func (e *SQLDBWrapper) Close() {
	_ = e.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	tables
	db    *sqlx.DB
	store *postgresengine.Store
}

func (e *SQLXWrapper) GetStore() *postgresengine.Store {
	return e.store
}

func (e *SQLXWrapper) Close() {
	_ = e.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the environment variable.
// The tables are named <tablePrefix>_books and <tablePrefix>_users and are created if they do not exist.
func CreateWrapperWithTestConfig(t testing.TB, tablePrefix string, options ...postgresengine.Option) Wrapper {
	return createWrapper(t, tablePrefix, false, options...)
}

// CreateWrapperWithReplica works like CreateWrapperWithTestConfig, but for pgx.pool and sqlx.db
// it configures the test database a second time as replica, so read-only transactions can be routed to it.
func CreateWrapperWithReplica(t testing.TB, tablePrefix string, options ...postgresengine.Option) Wrapper {
	return createWrapper(t, tablePrefix, true, options...)
}

func createWrapper(t testing.TB, tablePrefix string, withReplica bool, options ...postgresengine.Option) Wrapper {
	tbl := tables{books: tablePrefix + "_books", users: tablePrefix + "_users"}

	options = append(
		[]postgresengine.Option{
			postgresengine.WithBooksTableName(tbl.books),
			postgresengine.WithUsersTableName(tbl.users),
		},
		options...,
	)

	var wrapper Wrapper

	switch engineTypeFromEnv() {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")

		var store *postgresengine.Store
		if withReplica {
			store, err = postgresengine.NewStoreFromPGXPoolAndReplica(connPool, connPool, options...)
		} else {
			store, err = postgresengine.NewStoreFromPGXPool(connPool, options...)
		}
		assert.NoError(t, err, "error creating record store")

		wrapper = &PGXPoolWrapper{tables: tbl, pool: connPool, store: store}

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		assert.NoError(t, err, "error creating record store")

		wrapper = &SQLDBWrapper{tables: tbl, db: db, store: store}

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()

		var store *postgresengine.Store
		var err error
		if withReplica {
			store, err = postgresengine.NewStoreFromSQLXAndReplica(db, db, options...)
		} else {
			store, err = postgresengine.NewStoreFromSQLX(db, options...)
		}
		assert.NoError(t, err, "error creating record store")

		wrapper = &SQLXWrapper{tables: tbl, db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv()))
	}

	err := wrapper.GetStore().CreateSchema(context.Background())
	assert.NoError(t, err, "error creating the schema in test setup")

	return wrapper
}

// TryCreateStoreWithOptions tries to create a store with the given options and returns the error (for testing error cases)
func TryCreateStoreWithOptions(t testing.TB, options ...postgresengine.Option) error {
	switch engineTypeFromEnv() {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")
		defer connPool.Close()

		_, err = postgresengine.NewStoreFromPGXPool(connPool, options...)
		return err

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()
		defer func(db *sql.DB) {
			_ = db.Close() // makes no sense to handle this
		}(db)

		_, err := postgresengine.NewStoreFromSQLDB(db, options...)
		return err

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()
		defer func(db *sqlx.DB) {
			_ = db.Close() // makes no sense to handle this
		}(db)

		_, err := postgresengine.NewStoreFromSQLX(db, options...)
		return err

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv()))
	}
}

// CleanUp removes all books and users from the wrapper's tables.
func CleanUp(t testing.TB, wrapper Wrapper) {
	query := fmt.Sprintf(
		"TRUNCATE TABLE %s, %s RESTART IDENTITY",
		pgx.Identifier{wrapper.BooksTableName()}.Sanitize(),
		pgx.Identifier{wrapper.UsersTableName()}.Sanitize(),
	)

	err := ExecSQL(wrapper, query)
	assert.NoError(t, err, "error cleaning up the books and users tables")
}

// ExecSQL executes a raw SQL statement bypassing the record store, e.g. to provoke constraint violations.
func ExecSQL(wrapper Wrapper, query string) error {
	switch e := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err := e.pool.Exec(context.Background(), query)
		return err

	case *SQLDBWrapper:
		_, err := e.db.Exec(query)
		return err

	case *SQLXWrapper:
		_, err := e.db.Exec(query)
		return err

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", e))
	}
}

func engineTypeFromEnv() string {
	return strings.ToLower(os.Getenv("ADAPTER_TYPE"))
}
