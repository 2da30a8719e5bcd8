package removebook

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	commandType = "RemoveBook"
)

// Command represents the intent to remove a book from the library.
type Command struct {
	SerialNumber recordstore.SerialNumber
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
// It returns recordstore.ErrInvalidIdentifier for a malformed serial number.
func BuildCommand(serial string) (Command, error) {
	serialNumber, err := recordstore.ValidateSerialNumber(serial)
	if err != nil {
		return Command{}, err
	}

	return Command{SerialNumber: serialNumber}, nil
}
