// Package changebookstatus implements the Change Book Status use case: borrowing and returning a book.
//
// The request shape is checked by BuildCommand before the store is touched. The CommandHandler then runs
// one serializable transaction: lock the book row, check the borrower (borrow only), decide, write the
// lending columns. Serialization conflicts are retried, so of two concurrent borrows of the same book
// exactly one succeeds and the other fails with recordstore.ErrBookAlreadyBorrowed.
package changebookstatus
