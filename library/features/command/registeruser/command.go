package registeruser

import (
	"errors"
	"strings"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	commandType = "RegisterUser"
)

// Command represents the intent to register a new user.
type Command struct {
	CardNumber recordstore.CardNumber
	FirstName  string
	LastName   string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// It returns recordstore.ErrInvalidIdentifier for a malformed card number and
// recordstore.ErrInvalidRequest for an empty first or last name.
func BuildCommand(card string, firstName string, lastName string) (Command, error) {
	cardNumber, err := recordstore.ValidateCardNumber(card)
	if err != nil {
		return Command{}, err
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if firstName == "" || lastName == "" {
		return Command{}, errors.Join(recordstore.ErrInvalidRequest, errors.New("first name and last name must not be empty"))
	}

	return Command{
		CardNumber: cardNumber,
		FirstName:  firstName,
		LastName:   lastName,
	}, nil
}
