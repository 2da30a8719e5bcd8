// Package userwithbooks implements the User With Books query use case.
//
// It returns a registered user together with all books the user currently borrows.
// Both are read in the same read-only transaction, so the result reflects one snapshot.
package userwithbooks
