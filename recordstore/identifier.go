package recordstore

import (
	"errors"
	"fmt"
)

const identifierLength = 6

// SerialNumber identifies a Book.
type SerialNumber string

// CardNumber identifies a User (borrower).
type CardNumber string

// IsValidIdentifier reports whether s consists of exactly six ASCII decimal digits.
// It applies to serial numbers and card numbers alike.
func IsValidIdentifier(s string) bool {
	if len(s) != identifierLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// Valid reports whether the serial number has the 6-digit format.
func (s SerialNumber) Valid() bool {
	return IsValidIdentifier(string(s))
}

// String returns the serial number as plain string.
func (s SerialNumber) String() string {
	return string(s)
}

// Valid reports whether the card number has the 6-digit format.
func (c CardNumber) Valid() bool {
	return IsValidIdentifier(string(c))
}

// String returns the card number as plain string.
func (c CardNumber) String() string {
	return string(c)
}

// ValidateSerialNumber converts and validates a raw serial number.
func ValidateSerialNumber(raw string) (SerialNumber, error) {
	serial := SerialNumber(raw)
	if !serial.Valid() {
		return "", errors.Join(ErrInvalidIdentifier, fmt.Errorf("serial number %q is not valid", raw))
	}

	return serial, nil
}

// ValidateCardNumber converts and validates a raw card number.
func ValidateCardNumber(raw string) (CardNumber, error) {
	card := CardNumber(raw)
	if !card.Valid() {
		return "", errors.Join(ErrInvalidIdentifier, fmt.Errorf("card number %q is not valid", raw))
	}

	return card, nil
}
