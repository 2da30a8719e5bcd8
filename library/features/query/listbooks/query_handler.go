package listbooks

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// RecordStore defines the interface needed by the QueryHandler for record store operations.
type RecordStore interface {
	Read(ctx context.Context, fn postgresengine.TxFunc) error
}

// QueryHandler reads all books in one read-only transaction.
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
func (h QueryHandler) Handle(ctx context.Context, _ Query) (BooksInLibrary, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	var books []recordstore.Book

	err := h.store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var listErr error
		books, listErr = tx.Books().List(ctx)

		return listErr
	})
	if err != nil {
		return BooksInLibrary{}, err
	}

	return BooksInLibrary{Books: books, Count: len(books)}, nil
}
