package bookbyserial

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	queryType = "BookBySerialNumber"
)

// Query represents the intent to read a single book.
type Query struct {
	SerialNumber recordstore.SerialNumber
}

// BuildQuery creates a new Query.
// It returns recordstore.ErrInvalidIdentifier for a malformed serial number.
func BuildQuery(serial string) (Query, error) {
	serialNumber, err := recordstore.ValidateSerialNumber(serial)
	if err != nil {
		return Query{}, err
	}

	return Query{SerialNumber: serialNumber}, nil
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
