// Package recordstore provides the core record types and abstractions for the library records service.
//
// This package defines the fundamental types used across the store implementation and the
// library application layer: books, users (borrowers), identifier validation, lending state,
// and the common error definitions.
//
// Key types:
//   - Book: A book record keyed by its 6-digit serial number
//   - User: A borrower record keyed by its 6-digit card number
//   - Lending: The three lending columns of a book which always change together
//   - SerialNumber / CardNumber: Distinct identifier types that are never interchanged
//
// Invariant for every persisted book:
//
//	IsBorrowed == true  <=>  BorrowDate != nil  <=>  BorrowerCardNumber != nil
//
// Common usage pattern:
//
//	if !recordstore.IsValidIdentifier(serial) {
//		return recordstore.ErrInvalidIdentifier
//	}
//
//	err := store.Transact(ctx, func(ctx context.Context, tx postgresengine.Tx) error {
//		book, found, err := tx.Books().GetForUpdate(ctx, recordstore.SerialNumber(serial))
//		// decide and write ...
//	})
package recordstore
