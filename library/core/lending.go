package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// BookState is the current state of a book as seen by the decide functions.
type BookState struct {
	Serial recordstore.SerialNumber
	Found  bool
	Book   recordstore.Book
}

// BookStateFrom builds a BookState from the result of a book lookup.
func BookStateFrom(serial recordstore.SerialNumber, book recordstore.Book, found bool) BookState {
	return BookState{
		Serial: serial,
		Found:  found,
		Book:   book,
	}
}

// BorrowRequest holds who borrows a book and on which day.
type BorrowRequest struct {
	Borrower   recordstore.CardNumber
	BorrowDate time.Time
}

// DecideBorrow decides whether a book can be lent to a borrower.
//
// Business Rules:
//
//	GIVEN: A book with a serial number and a borrower with a card number
//	WHEN: the book should be borrowed on a given day
//	THEN: the book becomes Borrowed, with borrow date and borrower set
//	ERROR: ErrBookNotFound if the book does not exist
//	ERROR: ErrBookAlreadyBorrowed if the book is borrowed, also by the same borrower
//	ERROR: ErrUserNotFound if the borrower does not exist
func DecideBorrow(book BookState, borrowerExists bool, request BorrowRequest) DecisionResult {
	if !book.Found {
		return ErrorDecision(bookNotFound(book.Serial))
	}

	if book.Book.IsBorrowed {
		return ErrorDecision(errors.Join(
			recordstore.ErrBookAlreadyBorrowed,
			fmt.Errorf("book %s is already borrowed", book.Serial),
		))
	}

	if !borrowerExists {
		return ErrorDecision(errors.Join(
			recordstore.ErrUserNotFound,
			fmt.Errorf("user %s does not exist", request.Borrower),
		))
	}

	return SuccessDecision(recordstore.BorrowedLending(request.BorrowDate, request.Borrower))
}

// DecideReturn decides whether a borrowed book can be returned.
//
// Business Rules:
//
//	GIVEN: A book with a serial number
//	WHEN: the book should be returned
//	THEN: the book becomes Available, with borrow date and borrower cleared
//	ERROR: ErrBookNotFound if the book does not exist
//	ERROR: ErrBookAlreadyAvailable if the book is not borrowed
func DecideReturn(book BookState) DecisionResult {
	if !book.Found {
		return ErrorDecision(bookNotFound(book.Serial))
	}

	if !book.Book.IsBorrowed {
		return ErrorDecision(errors.Join(
			recordstore.ErrBookAlreadyAvailable,
			fmt.Errorf("book %s is already available", book.Serial),
		))
	}

	return SuccessDecision(recordstore.AvailableLending())
}

func bookNotFound(serial recordstore.SerialNumber) error {
	return errors.Join(recordstore.ErrBookNotFound, fmt.Errorf("book %s does not exist", serial))
}
