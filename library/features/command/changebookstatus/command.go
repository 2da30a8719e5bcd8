package changebookstatus

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	commandType = "ChangeBookStatus"
)

// Command represents the intent to borrow or to return a book.
type Command struct {
	SerialNumber recordstore.SerialNumber
	Borrow       bool
	BorrowDate   time.Time              // only set when borrowing
	Borrower     recordstore.CardNumber // only set when borrowing
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command and checks the shape of the request.
//
// A borrow needs both a borrow date and a valid borrower card number, a return must carry neither.
// It returns recordstore.ErrInvalidIdentifier for a malformed serial number
// and recordstore.ErrInvalidRequest for a request of the wrong shape.
func BuildCommand(serial string, isBorrowed bool, borrowDate *time.Time, borrowerCardNumber *string) (Command, error) {
	serialNumber, err := recordstore.ValidateSerialNumber(serial)
	if err != nil {
		return Command{}, err
	}

	if !isBorrowed {
		if borrowDate != nil || borrowerCardNumber != nil {
			return Command{}, invalidRequest("returning a book must not carry a borrow date or a borrower")
		}

		return Command{SerialNumber: serialNumber}, nil
	}

	if borrowDate == nil {
		return Command{}, invalidRequest("borrowing a book requires a borrow date")
	}

	if borrowerCardNumber == nil {
		return Command{}, invalidRequest("borrowing a book requires a borrower card number")
	}

	borrower, err := recordstore.ValidateCardNumber(*borrowerCardNumber)
	if err != nil {
		return Command{}, errors.Join(recordstore.ErrInvalidRequest, err)
	}

	return Command{
		SerialNumber: serialNumber,
		Borrow:       true,
		BorrowDate:   recordstore.ToBorrowDate(*borrowDate),
		Borrower:     borrower,
	}, nil
}

func invalidRequest(reason string) error {
	return errors.Join(recordstore.ErrInvalidRequest, errors.New(reason))
}
