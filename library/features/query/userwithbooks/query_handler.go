package userwithbooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// RecordStore defines the interface needed by the QueryHandler for record store operations.
type RecordStore interface {
	Read(ctx context.Context, fn postgresengine.TxFunc) error
}

// QueryHandler composes a user and the borrowed books from one read-only transaction.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler with the provided RecordStore dependency.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (recordstore.UserWithBooks, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	result := recordstore.UserWithBooks{}

	err := h.store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		user, found, getErr := tx.Users().Get(ctx, query.CardNumber)
		if getErr != nil {
			return getErr
		}

		if !found {
			return errors.Join(recordstore.ErrUserNotFound, fmt.Errorf("user %s does not exist", query.CardNumber))
		}

		books, booksErr := tx.Users().BorrowedBooks(ctx, query.CardNumber)
		if booksErr != nil {
			return booksErr
		}

		result.User = user
		result.BorrowedBooks = books

		return nil
	})
	if err != nil {
		return recordstore.UserWithBooks{}, err
	}

	return result, nil
}
