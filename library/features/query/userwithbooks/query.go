package userwithbooks

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	queryType = "UserWithBooks"
)

// Query represents the intent to read a user including the borrowed books.
type Query struct {
	CardNumber recordstore.CardNumber
}

// BuildQuery creates a new Query.
// It returns recordstore.ErrInvalidIdentifier for a malformed card number.
func BuildQuery(card string) (Query, error) {
	cardNumber, err := recordstore.ValidateCardNumber(card)
	if err != nil {
		return Query{}, err
	}

	return Query{CardNumber: cardNumber}, nil
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
