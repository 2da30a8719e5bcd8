package helper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// FixtureBorrowDate returns a fixed calendar day used as borrow date in tests.
func FixtureBorrowDate() time.Time {
	return time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
}

// GivenBookWasAdded creates an available book directly in the store.
func GivenBookWasAdded(t testing.TB, ctx context.Context, store *postgresengine.Store, serial string) recordstore.Book { //nolint:revive
	t.Helper()

	var book recordstore.Book

	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var createErr error
		book, createErr = tx.Books().Create(ctx, recordstore.SerialNumber(serial), "Learning Domain-Driven Design", "Vlad Khononov")

		return createErr
	})
	assert.NoError(t, err, "error in arranging test data")

	return book
}

// GivenUserWasRegistered creates a user directly in the store.
func GivenUserWasRegistered(t testing.TB, ctx context.Context, store *postgresengine.Store, card string) recordstore.User { //nolint:revive
	t.Helper()

	var user recordstore.User

	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var createErr error
		user, createErr = tx.Users().Create(ctx, recordstore.CardNumber(card), "Ada", "Lovelace")

		return createErr
	})
	assert.NoError(t, err, "error in arranging test data")

	return user
}

// GivenBookWasBorrowed writes a borrowed lending state for an existing book and user directly in the store.
func GivenBookWasBorrowed(t testing.TB, ctx context.Context, store *postgresengine.Store, serial string, card string) { //nolint:revive
	t.Helper()

	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		lending := recordstore.BorrowedLending(FixtureBorrowDate(), recordstore.CardNumber(card))

		return tx.Books().SaveLending(ctx, recordstore.SerialNumber(serial), lending)
	})
	assert.NoError(t, err, "error in arranging test data")
}

// ReadBook reads a book in its own transaction for assertions.
func ReadBook(t testing.TB, ctx context.Context, store *postgresengine.Store, serial string) (recordstore.Book, bool) { //nolint:revive
	t.Helper()

	var book recordstore.Book
	var found bool

	err := store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var getErr error
		book, found, getErr = tx.Books().Get(ctx, recordstore.SerialNumber(serial))

		return getErr
	})
	assert.NoError(t, err, "error in reading test data")

	return book, found
}

// ReadUser reads a user in its own transaction for assertions.
func ReadUser(t testing.TB, ctx context.Context, store *postgresengine.Store, card string) (recordstore.User, bool) { //nolint:revive
	t.Helper()

	var user recordstore.User
	var found bool

	err := store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var getErr error
		user, found, getErr = tx.Users().Get(ctx, recordstore.CardNumber(card))

		return getErr
	})
	assert.NoError(t, err, "error in reading test data")

	return user, found
}

// AssertLendingInvariant asserts that the three lending columns of a book are all set or all cleared.
func AssertLendingInvariant(t testing.TB, book recordstore.Book) {
	t.Helper()

	assert.True(t, book.Lending().IsConsistent(), "lending columns of book %s are inconsistent", book.SerialNumber)
}
