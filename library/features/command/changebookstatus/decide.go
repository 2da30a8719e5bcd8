package changebookstatus

import (
	"github.com/AntonStoeckl/library-records-go/library/core"
)

// Decide picks the lending transition requested by the command and delegates to the pure core rules.
func Decide(book core.BookState, borrowerExists bool, command Command) core.DecisionResult {
	if !command.Borrow {
		return core.DecideReturn(book)
	}

	return core.DecideBorrow(book, borrowerExists, core.BorrowRequest{
		Borrower:   command.Borrower,
		BorrowDate: command.BorrowDate,
	})
}
