package recordstore

import (
	"errors"
)

var (
	// ErrInvalidIdentifier is returned when a serial number or card number is not exactly six decimal digits.
	ErrInvalidIdentifier = errors.New("identifier must be exactly 6 digits")

	// ErrDuplicateKey is returned when a create operation collides with an existing unique identifier.
	ErrDuplicateKey = errors.New("record with this identifier already exists")

	// ErrBookNotFound is returned when a referenced book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrBookAlreadyBorrowed is returned when a borrow is requested for a book that is already borrowed.
	ErrBookAlreadyBorrowed = errors.New("book is already borrowed")

	// ErrBookAlreadyAvailable is returned when a return is requested for a book that is already available.
	ErrBookAlreadyAvailable = errors.New("book is already available")

	// ErrUserHasBorrowedBooks is returned when a user should be deleted while books are still borrowed by this user.
	ErrUserHasBorrowedBooks = errors.New("user still has borrowed books")

	// ErrInvalidRequest is returned when the request fields do not fit the requested transition.
	ErrInvalidRequest = errors.New("request is not valid for the requested transition")

	// ErrStoreUnavailable is returned when the underlying persistence is unreachable or fails.
	ErrStoreUnavailable = errors.New("record store is unavailable")

	// ErrConcurrencyConflict is returned when the store could not serialize a transaction with a concurrent one.
	ErrConcurrencyConflict = errors.New("concurrency conflict, transaction could not be serialized")

	// ErrNilDatabaseConnection is returned when a store is constructed without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an empty table name is supplied as an option.
	ErrEmptyTableName = errors.New("empty table name supplied")
)
