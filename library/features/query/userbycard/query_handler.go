package userbycard

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

// QueryHandler reads one user in a read-only transaction.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (recordstore.User, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	var user recordstore.User
	var found bool

	err := h.store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var getErr error
		user, found, getErr = tx.Users().Get(ctx, query.CardNumber)

		return getErr
	})
	if err != nil {
		return recordstore.User{}, err
	}

	if !found {
		return recordstore.User{}, errors.Join(
			recordstore.ErrUserNotFound,
			fmt.Errorf("user %s does not exist", query.CardNumber),
		)
	}

	return user, nil
}
