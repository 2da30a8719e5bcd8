package addbook

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	commandType = "AddBook"
)

const (
	maxTitleLength  = 200
	maxAuthorLength = 100
)

// Command represents the intent to add a book to the library.
type Command struct {
	SerialNumber recordstore.SerialNumber
	Title        string
	Author       string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// It returns recordstore.ErrInvalidIdentifier for a malformed serial number and
// recordstore.ErrInvalidRequest for an empty or too long title or author.
func BuildCommand(serial string, title string, author string) (Command, error) {
	serialNumber, err := recordstore.ValidateSerialNumber(serial)
	if err != nil {
		return Command{}, err
	}

	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if err := checkText("title", title, maxTitleLength); err != nil {
		return Command{}, err
	}

	if err := checkText("author", author, maxAuthorLength); err != nil {
		return Command{}, err
	}

	return Command{
		SerialNumber: serialNumber,
		Title:        title,
		Author:       author,
	}, nil
}

func checkText(field string, value string, maxLength int) error {
	if value == "" {
		return errors.Join(recordstore.ErrInvalidRequest, fmt.Errorf("%s must not be empty", field))
	}

	if utf8.RuneCountInString(value) > maxLength {
		return errors.Join(recordstore.ErrInvalidRequest, fmt.Errorf("%s must not be longer than %d characters", field, maxLength))
	}

	return nil
}
