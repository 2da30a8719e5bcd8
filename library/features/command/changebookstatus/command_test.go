package changebookstatus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/features/command/changebookstatus"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

func Test_BuildCommand_Borrow(t *testing.T) {
	// arrange
	borrowDate := time.Date(2024, time.March, 14, 18, 5, 0, 0, time.UTC)
	borrower := "654321"

	// act
	command, err := changebookstatus.BuildCommand("123456", true, &borrowDate, &borrower)

	// assert
	require.NoError(t, err)
	assert.Equal(t, recordstore.SerialNumber("123456"), command.SerialNumber)
	assert.True(t, command.Borrow)
	assert.Equal(t, recordstore.CardNumber("654321"), command.Borrower)
	assert.Equal(t, time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC), command.BorrowDate)
	assert.Equal(t, "ChangeBookStatus", command.CommandType())
}

func Test_BuildCommand_Return(t *testing.T) {
	// act
	command, err := changebookstatus.BuildCommand("123456", false, nil, nil)

	// assert
	require.NoError(t, err)
	assert.False(t, command.Borrow)
	assert.Empty(t, command.Borrower)
	assert.True(t, command.BorrowDate.IsZero())
}

func Test_BuildCommand_RejectsInvalidRequests(t *testing.T) {
	borrowDate := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	validCard := "654321"
	invalidCard := "65432x"

	tests := []struct {
		name        string
		serial      string
		isBorrowed  bool
		borrowDate  *time.Time
		borrower    *string
		expectedErr error
	}{
		{name: "invalid serial number", serial: "12345", isBorrowed: false, expectedErr: recordstore.ErrInvalidIdentifier},
		{name: "borrow without date", serial: "123456", isBorrowed: true, borrower: &validCard, expectedErr: recordstore.ErrInvalidRequest},
		{name: "borrow without borrower", serial: "123456", isBorrowed: true, borrowDate: &borrowDate, expectedErr: recordstore.ErrInvalidRequest},
		{name: "borrow with invalid card number", serial: "123456", isBorrowed: true, borrowDate: &borrowDate, borrower: &invalidCard, expectedErr: recordstore.ErrInvalidRequest},
		{name: "return with date", serial: "123456", isBorrowed: false, borrowDate: &borrowDate, expectedErr: recordstore.ErrInvalidRequest},
		{name: "return with borrower", serial: "123456", isBorrowed: false, borrower: &validCard, expectedErr: recordstore.ErrInvalidRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := changebookstatus.BuildCommand(tc.serial, tc.isBorrowed, tc.borrowDate, tc.borrower)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}
