package recordstore

import (
	"time"
)

// BorrowDate is the calendar day a book was borrowed, normalized to midnight UTC.
type BorrowDate = time.Time

// ToBorrowDate normalizes a time to a calendar day (midnight UTC).
func ToBorrowDate(t time.Time) BorrowDate {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Book is a book record.
//
// BorrowDate and BorrowerCardNumber are nil if and only if IsBorrowed is false.
type Book struct {
	SerialNumber       SerialNumber
	Title              string
	Author             string
	IsBorrowed         bool
	BorrowDate         *BorrowDate
	BorrowerCardNumber *CardNumber
}

// Lending returns the lending columns of the book.
func (b Book) Lending() Lending {
	return Lending{
		IsBorrowed:         b.IsBorrowed,
		BorrowDate:         b.BorrowDate,
		BorrowerCardNumber: b.BorrowerCardNumber,
	}
}

// User is a borrower record.
type User struct {
	CardNumber CardNumber
	FirstName  string
	LastName   string
}

// UserWithBooks combines a User with all books currently borrowed by this user.
type UserWithBooks struct {
	User          User
	BorrowedBooks []Book
}

// Lending holds the three lending columns of a book, which are always written together.
//
// It should only be constructed with the supplied factory methods:
//   - BorrowedLending
//   - AvailableLending
type Lending struct {
	IsBorrowed         bool
	BorrowDate         *BorrowDate
	BorrowerCardNumber *CardNumber
}

// BorrowedLending builds the lending state of a book borrowed by the given user on the given day.
func BorrowedLending(borrowDate time.Time, borrower CardNumber) Lending {
	date := ToBorrowDate(borrowDate)

	return Lending{
		IsBorrowed:         true,
		BorrowDate:         &date,
		BorrowerCardNumber: &borrower,
	}
}

// AvailableLending builds the lending state of an available book.
func AvailableLending() Lending {
	return Lending{}
}

// IsConsistent reports whether the three lending columns are all set or all cleared.
func (l Lending) IsConsistent() bool {
	if l.IsBorrowed {
		return l.BorrowDate != nil && l.BorrowerCardNumber != nil
	}

	return l.BorrowDate == nil && l.BorrowerCardNumber == nil
}
