package changebookstatus

import (
	"context"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// RecordStore defines the interface needed by the CommandHandler for record store operations.
type RecordStore interface {
	Transact(ctx context.Context, fn postgresengine.TxFunc) error
}

// CommandHandler orchestrates the borrow/return workflow with retry.
// It runs Lock -> Check borrower -> Decide -> Save in one transaction.
// External wrappers handle all observability concerns.
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

// Handle executes the command with retry on serialization conflicts.
// Returns HandlerResult containing execution metadata for observability.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	ctx = recordstore.WithStrongConsistency(ctx)

	return h.store.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
		book, found, err := tx.Books().GetForUpdate(ctx, command.SerialNumber)
		if err != nil {
			return err
		}

		borrowerExists := false
		if command.Borrow {
			borrowerExists, err = tx.Users().Exists(ctx, command.Borrower)
			if err != nil {
				return err
			}
		}

		result := Decide(core.BookStateFrom(command.SerialNumber, book, found), borrowerExists, command)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		return tx.Books().SaveLending(ctx, command.SerialNumber, result.Lending)
	})
}
