package bookbyserial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-records-go/library/features/query/bookbyserial"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

func Test_BuildQuery(t *testing.T) {
	// act
	query, err := bookbyserial.BuildQuery("123456")

	// assert
	assert.NoError(t, err)
	assert.Equal(t, recordstore.SerialNumber("123456"), query.SerialNumber)
	assert.Equal(t, "BookBySerialNumber", query.QueryType())
}

func Test_BuildQuery_RejectsMalformedSerialNumber(t *testing.T) {
	for _, serial := range []string{"", "12345", "1234567", "12a456"} {
		// act
		_, err := bookbyserial.BuildQuery(serial)

		// assert
		assert.ErrorIs(t, err, recordstore.ErrInvalidIdentifier, "serial %q", serial)
	}
}
