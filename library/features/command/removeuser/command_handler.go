package removeuser

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// RecordStore defines the interface needed by the CommandHandler for record store operations.
type RecordStore interface {
	Transact(ctx context.Context, fn postgresengine.TxFunc) error
}

// CommandHandler returns the user's borrowed books and deletes the user in one transaction, with retry.
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

// Handle executes the command. The result is idempotent if there was no such user.
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
		var err error

		_, found, err = tx.Users().Get(ctx, command.CardNumber)
		if err != nil || !found {
			return err
		}

		if err = returnBorrowedBooks(ctx, tx, command.CardNumber); err != nil {
			return err
		}

		_, _, err = tx.Users().Delete(ctx, command.CardNumber)

		return err
	})

	return !found, err
}

// returnBorrowedBooks locks and returns every book the user has borrowed, in serial number order.
func returnBorrowedBooks(ctx context.Context, tx *postgresengine.Tx, card recordstore.CardNumber) error {
	borrowedBooks, err := tx.Users().BorrowedBooks(ctx, card)
	if err != nil {
		return err
	}

	for _, borrowed := range borrowedBooks {
		book, found, lockErr := tx.Books().GetForUpdate(ctx, borrowed.SerialNumber)
		if lockErr != nil {
			return errors.Join(ErrReturningBorrowedBooksFailed, lockErr)
		}

		result := DecideReturnOnRemoval(core.BookStateFrom(borrowed.SerialNumber, book, found))
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		if !result.HasLendingToSave() {
			continue
		}

		if saveErr := tx.Books().SaveLending(ctx, borrowed.SerialNumber, result.Lending); saveErr != nil {
			return errors.Join(ErrReturningBorrowedBooksFailed, saveErr)
		}
	}

	return nil
}
