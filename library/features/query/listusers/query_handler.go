package listusers

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// RecordStore defines the interface needed by the QueryHandler for record store operations.
type RecordStore interface {
	Read(ctx context.Context, fn postgresengine.TxFunc) error
}

// QueryHandler reads all users in one read-only transaction.
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
func (h QueryHandler) Handle(ctx context.Context, _ Query) (RegisteredUsers, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	var users []recordstore.User

	err := h.store.Read(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var listErr error
		users, listErr = tx.Users().List(ctx)

		return listErr
	})
	if err != nil {
		return RegisteredUsers{}, err
	}

	return RegisteredUsers{Users: users, Count: len(users)}, nil
}
