package postgresengine

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const (
	schemaAdvisoryLockKey = 7243013
	actionCreateSchema    = "create schema"
)

// CreateSchema creates the users and books tables with their constraints and indexes if they do not exist.
// Concurrent calls are serialized with a transaction scoped advisory lock.
func (s *Store) CreateSchema(ctx context.Context) error {
	err := s.Transact(ctx, func(ctx context.Context, tx *Tx) error {
		for _, statement := range s.schemaStatements() {
			if _, err := tx.execSQL(ctx, statement, actionCreateSchema); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logOperation(ctx, logMsgSchemaCreated, "books_table", s.booksTableName, "users_table", s.usersTableName)

	return nil
}

func (s *Store) schemaStatements() []sqlQueryString {
	users := pgx.Identifier{s.usersTableName}.Sanitize()
	books := pgx.Identifier{s.booksTableName}.Sanitize()
	lendingCheck := pgx.Identifier{s.booksTableName + "_lending_consistent"}.Sanitize()
	borrowerIndex := pgx.Identifier{s.booksTableName + "_borrower_card_number_idx"}.Sanitize()

	return []sqlQueryString{
		fmt.Sprintf(`SELECT pg_advisory_xact_lock(%d)`, schemaAdvisoryLockKey),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			card_number VARCHAR(6) NOT NULL UNIQUE CHECK (card_number ~ '^[0-9]{6}$'),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL
		)`, users),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			serial_number VARCHAR(6) NOT NULL UNIQUE CHECK (serial_number ~ '^[0-9]{6}$'),
			title VARCHAR(200) NOT NULL,
			author VARCHAR(100) NOT NULL,
			is_borrowed BOOLEAN NOT NULL DEFAULT FALSE,
			borrow_date DATE NULL,
			borrower_card_number VARCHAR(6) NULL REFERENCES %s (card_number),
			CONSTRAINT %s CHECK (
				(is_borrowed AND borrow_date IS NOT NULL AND borrower_card_number IS NOT NULL)
				OR (NOT is_borrowed AND borrow_date IS NULL AND borrower_card_number IS NULL)
			)
		)`, books, users, lendingCheck),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (borrower_card_number)`, borrowerIndex, books),
	}
}
