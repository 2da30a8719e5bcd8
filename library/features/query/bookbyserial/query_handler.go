package bookbyserial

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

// QueryHandler reads one book in a read-only transaction.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (recordstore.Book, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	var book recordstore.Book
	var found bool

	err := h.store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var getErr error
		book, found, getErr = tx.Books().Get(ctx, query.SerialNumber)

		return getErr
	})
	if err != nil {
		return recordstore.Book{}, err
	}

	if !found {
		return recordstore.Book{}, errors.Join(
			recordstore.ErrBookNotFound,
			fmt.Errorf("book %s does not exist", query.SerialNumber),
		)
	}

	return book, nil
}
