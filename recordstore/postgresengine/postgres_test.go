package postgresengine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
	. "github.com/AntonStoeckl/library-records-go/testutil/postgresengine/helper"
	"github.com/AntonStoeckl/library-records-go/testutil/postgresengine/helper/postgreswrapper"
)

const tablePrefix = "postgresengine"

func Test_BookStore_Create_Then_Get_RoundTrip(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// act
	var created recordstore.Book
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var createErr error
		created, createErr = tx.Books().Create(ctx, "123456", "Dune", "Frank Herbert")
		return createErr
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, recordstore.SerialNumber("123456"), created.SerialNumber)
	assert.Equal(t, "Dune", created.Title)
	assert.Equal(t, "Frank Herbert", created.Author)
	assert.False(t, created.IsBorrowed)
	assert.Nil(t, created.BorrowDate)
	assert.Nil(t, created.BorrowerCardNumber)

	book, found := ReadBook(t, ctx, store, "123456")
	assert.True(t, found)
	assert.Equal(t, created, book)
}

func Test_BookStore_Create_WithExistingSerialNumber_ReturnsDuplicateKey(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "123456")

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		_, createErr := tx.Books().Create(ctx, "123456", "Dune", "Frank Herbert")
		return createErr
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrDuplicateKey)
}

func Test_BookStore_Create_WithInvalidSerialNumber_ReturnsInvalidIdentifier(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		_, createErr := tx.Books().Create(ctx, "12a456", "Dune", "Frank Herbert")
		return createErr
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrInvalidIdentifier)
	_, found := ReadBook(t, ctx, store, "12a456")
	assert.False(t, found)
}

func Test_BookStore_List_ReturnsBooksOrderedBySerialNumber(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "300000")
	GivenBookWasAdded(t, ctx, store, "100000")
	GivenBookWasAdded(t, ctx, store, "200000")

	// act
	var books []recordstore.Book
	err := store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var listErr error
		books, listErr = tx.Books().List(ctx)
		return listErr
	})

	// assert
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, recordstore.SerialNumber("100000"), books[0].SerialNumber)
	assert.Equal(t, recordstore.SerialNumber("200000"), books[1].SerialNumber)
	assert.Equal(t, recordstore.SerialNumber("300000"), books[2].SerialNumber)
}

func Test_BookStore_Delete(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "123456")

	// act
	var deleted recordstore.Book
	var foundExisting, foundAbsent bool
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var deleteErr error
		deleted, foundExisting, deleteErr = tx.Books().Delete(ctx, "123456")
		if deleteErr != nil {
			return deleteErr
		}

		_, foundAbsent, deleteErr = tx.Books().Delete(ctx, "654321")
		return deleteErr
	})

	// assert
	require.NoError(t, err)
	assert.True(t, foundExisting)
	assert.Equal(t, recordstore.SerialNumber("123456"), deleted.SerialNumber)
	assert.False(t, foundAbsent)
	_, found := ReadBook(t, ctx, store, "123456")
	assert.False(t, found)
}

func Test_BookStore_SaveLending_Borrow_Then_Return_RoundTrip(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "123456")
	GivenUserWasRegistered(t, ctx, store, "654321")

	// act
	GivenBookWasBorrowed(t, ctx, store, "123456", "654321")
	borrowed, _ := ReadBook(t, ctx, store, "123456")

	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		return tx.Books().SaveLending(ctx, "123456", recordstore.AvailableLending())
	})
	returned, _ := ReadBook(t, ctx, store, "123456")

	// assert
	require.NoError(t, err)

	assert.True(t, borrowed.IsBorrowed)
	require.NotNil(t, borrowed.BorrowDate)
	assert.True(t, FixtureBorrowDate().Equal(*borrowed.BorrowDate))
	require.NotNil(t, borrowed.BorrowerCardNumber)
	assert.Equal(t, recordstore.CardNumber("654321"), *borrowed.BorrowerCardNumber)
	AssertLendingInvariant(t, borrowed)

	assert.False(t, returned.IsBorrowed)
	assert.Nil(t, returned.BorrowDate)
	assert.Nil(t, returned.BorrowerCardNumber)
	AssertLendingInvariant(t, returned)
}

func Test_BookStore_SaveLending_WithUnknownBorrower_ReturnsUserNotFound_And_RollsBack(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "123456")

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		lending := recordstore.BorrowedLending(FixtureBorrowDate(), "999999")
		return tx.Books().SaveLending(ctx, "123456", lending)
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrUserNotFound)
	book, found := ReadBook(t, ctx, store, "123456")
	assert.True(t, found)
	assert.False(t, book.IsBorrowed)
	AssertLendingInvariant(t, book)
}

func Test_BookStore_SaveLending_WithUnknownBook_ReturnsBookNotFound(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		return tx.Books().SaveLending(ctx, "123456", recordstore.AvailableLending())
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrBookNotFound)
}

func Test_BookStore_SaveLending_WithInconsistentLending_ReturnsInvalidRequest(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "123456")

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		return tx.Books().SaveLending(ctx, "123456", recordstore.Lending{IsBorrowed: true})
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrInvalidRequest)
}

func Test_Schema_RejectsInconsistentLendingColumns(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)

	// act
	err := postgreswrapper.ExecSQL(wrapper, fmt.Sprintf(
		`INSERT INTO %s (serial_number, title, author, is_borrowed) VALUES ('123456', 'Dune', 'Frank Herbert', TRUE)`,
		wrapper.BooksTableName(),
	))

	// assert
	assert.Error(t, err)
}

func Test_CreateSchema_IsIdempotent(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()

	// act
	err := wrapper.GetStore().CreateSchema(ctx)

	// assert
	assert.NoError(t, err)
}

func Test_UserStore_Create_Exists_Get_Delete(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// act
	var existsBefore, existsAfter bool
	var created, deleted recordstore.User
	var foundOnDelete bool

	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var txErr error
		if existsBefore, txErr = tx.Users().Exists(ctx, "654321"); txErr != nil {
			return txErr
		}

		if created, txErr = tx.Users().Create(ctx, "654321", "Ada", "Lovelace"); txErr != nil {
			return txErr
		}

		existsAfter, txErr = tx.Users().Exists(ctx, "654321")
		return txErr
	})
	require.NoError(t, err)

	user, found := ReadUser(t, ctx, store, "654321")

	err = store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var deleteErr error
		deleted, foundOnDelete, deleteErr = tx.Users().Delete(ctx, "654321")
		return deleteErr
	})
	require.NoError(t, err)

	_, foundAfterDelete := ReadUser(t, ctx, store, "654321")

	// assert
	assert.False(t, existsBefore)
	assert.True(t, existsAfter)
	assert.True(t, found)
	assert.Equal(t, created, user)
	assert.Equal(t, recordstore.User{CardNumber: "654321", FirstName: "Ada", LastName: "Lovelace"}, user)
	assert.True(t, foundOnDelete)
	assert.Equal(t, user, deleted)
	assert.False(t, foundAfterDelete)
}

func Test_UserStore_Create_WithExistingCardNumber_ReturnsDuplicateKey(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenUserWasRegistered(t, ctx, store, "654321")

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		_, createErr := tx.Users().Create(ctx, "654321", "Grace", "Hopper")
		return createErr
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrDuplicateKey)
}

func Test_UserStore_Delete_WithBorrowedBooks_ReturnsUserHasBorrowedBooks(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "123456")
	GivenUserWasRegistered(t, ctx, store, "654321")
	GivenBookWasBorrowed(t, ctx, store, "123456", "654321")

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		_, _, deleteErr := tx.Users().Delete(ctx, "654321")
		return deleteErr
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrUserHasBorrowedBooks)
	assert.NotErrorIs(t, err, recordstore.ErrUserNotFound)
	_, found := ReadUser(t, ctx, store, "654321")
	assert.True(t, found)
}

func Test_UserStore_BorrowedBooks_SeesWritesOfTheSameTransaction(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "111111")
	GivenBookWasAdded(t, ctx, store, "222222")
	GivenUserWasRegistered(t, ctx, store, "654321")
	GivenBookWasBorrowed(t, ctx, store, "111111", "654321")
	GivenBookWasBorrowed(t, ctx, store, "222222", "654321")

	// act
	var before, after []recordstore.Book
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var txErr error
		if before, txErr = tx.Users().BorrowedBooks(ctx, "654321"); txErr != nil {
			return txErr
		}

		if txErr = tx.Books().SaveLending(ctx, "111111", recordstore.AvailableLending()); txErr != nil {
			return txErr
		}

		after, txErr = tx.Users().BorrowedBooks(ctx, "654321")
		return txErr
	})

	// assert
	require.NoError(t, err)
	assert.Len(t, before, 2)
	require.Len(t, after, 1)
	assert.Equal(t, recordstore.SerialNumber("222222"), after[0].SerialNumber)
}

func Test_Transact_RollsBackAllWrites_WhenTheUnitOfWorkFails(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)
	errSomethingFailed := errors.New("something failed")

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		if _, createErr := tx.Books().Create(ctx, "123456", "Dune", "Frank Herbert"); createErr != nil {
			return createErr
		}

		return errSomethingFailed
	})

	// assert
	assert.ErrorIs(t, err, errSomethingFailed)
	_, found := ReadBook(t, ctx, store, "123456")
	assert.False(t, found)
}

func Test_Read_RejectsWrites(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// act
	err := store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		_, createErr := tx.Books().Create(ctx, "123456", "Dune", "Frank Herbert")
		return createErr
	})

	// assert
	assert.ErrorIs(t, err, recordstore.ErrStoreUnavailable)
}

func Test_Read_WithEventualConsistency_And_Replica(t *testing.T) {
	// setup
	ctx := t.Context()
	wrapper := postgreswrapper.CreateWrapperWithReplica(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()
	postgreswrapper.CleanUp(t, wrapper)

	// arrange
	GivenBookWasAdded(t, ctx, store, "123456")

	// act
	var book recordstore.Book
	var found bool
	err := store.Read(recordstore.WithEventualConsistency(ctx), func(ctx context.Context, tx *postgresengine.Tx) error {
		var getErr error
		book, found, getErr = tx.Books().Get(ctx, "123456")
		return getErr
	})

	// assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, recordstore.SerialNumber("123456"), book.SerialNumber)
}

func Test_Transact_WithCanceledContext_ReturnsContextError(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()
	store := wrapper.GetStore()

	ctx, cancel := context.WithTimeout(t.Context(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	// act
	err := store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		_, listErr := tx.Books().List(ctx)
		return listErr
	})

	// assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, recordstore.ErrStoreUnavailable)
}

func Test_Ping(t *testing.T) {
	// setup
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix)
	defer wrapper.Close()

	// act
	err := wrapper.GetStore().Ping(t.Context())

	// assert
	assert.NoError(t, err)
}
