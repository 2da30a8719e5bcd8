package removeuser

import (
	"errors"

	"github.com/AntonStoeckl/library-records-go/library/core"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// ErrReturningBorrowedBooksFailed is returned when a book borrowed by the removed user could not be returned.
var ErrReturningBorrowedBooksFailed = errors.New("returning the borrowed books of the user failed")

// DecideReturnOnRemoval decides what happens with one book borrowed by a user who is being removed.
//
// Business Rules:
//
//	GIVEN: A book listed as borrowed by the user
//	WHEN: the user is removed
//	THEN: the book becomes Available
//	IDEMPOTENT: if the book is already available, it is skipped
//	ERROR: ErrReturningBorrowedBooksFailed for any other rule violation, e.g. the book vanished
func DecideReturnOnRemoval(book core.BookState) core.DecisionResult {
	result := core.DecideReturn(book)

	err := result.HasError()
	if err == nil {
		return result
	}

	if errors.Is(err, recordstore.ErrBookAlreadyAvailable) {
		return core.IdempotentDecision()
	}

	return core.ErrorDecision(errors.Join(ErrReturningBorrowedBooksFailed, err))
}
