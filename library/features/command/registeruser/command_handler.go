package registeruser

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// RecordStore defines the interface needed by the CommandHandler for record store operations.
type RecordStore interface {
	Transact(ctx context.Context, fn postgresengine.TxFunc) error
}

// CommandHandler inserts the new user inside one transaction, with retry.
type CommandHandler struct {
	store        RecordStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store RecordStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command.
// A card number which is already taken fails with recordstore.ErrDuplicateKey.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	ctx = recordstore.WithStrongConsistency(ctx)

	return h.store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		_, err := tx.Users().Create(ctx, command.CardNumber, command.FirstName, command.LastName)

		return err
	})
}
