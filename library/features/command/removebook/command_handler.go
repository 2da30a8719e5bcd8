package removebook

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

// CommandHandler deletes the book inside one transaction, with retry.
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

// Handle executes the command. The result is idempotent if there was no such book.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	ctx = recordstore.WithStrongConsistency(ctx)

	var found bool

	err := h.store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		var deleteErr error
		_, found, deleteErr = tx.Books().Delete(ctx, command.SerialNumber)

		return deleteErr
	})

	return !found, err
}
