package removeuser

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	commandType = "RemoveUser"
)

// Command represents the intent to remove a user.
type Command struct {
	CardNumber recordstore.CardNumber
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
// It returns recordstore.ErrInvalidIdentifier for a malformed card number.
func BuildCommand(card string) (Command, error) {
	cardNumber, err := recordstore.ValidateCardNumber(card)
	if err != nil {
		return Command{}, err
	}

	return Command{CardNumber: cardNumber}, nil
}
