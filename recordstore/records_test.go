package recordstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

func Test_BorrowedLending_IsConsistentAndNormalizesTheDate(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2024, 3, 15, 17, 45, 0, 0, time.FixedZone("CET", 3600))

	// act
	lending := recordstore.BorrowedLending(borrowedAt, "654321")

	// assert
	assert.True(t, lending.IsConsistent())
	assert.True(t, lending.IsBorrowed)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *lending.BorrowDate)
	assert.Equal(t, recordstore.CardNumber("654321"), *lending.BorrowerCardNumber)
}

func Test_AvailableLending_IsConsistent(t *testing.T) {
	// act
	lending := recordstore.AvailableLending()

	// assert
	assert.True(t, lending.IsConsistent())
	assert.False(t, lending.IsBorrowed)
	assert.Nil(t, lending.BorrowDate)
	assert.Nil(t, lending.BorrowerCardNumber)
}

func Test_Lending_IsConsistent_DetectsPartialStates(t *testing.T) {
	date := recordstore.ToBorrowDate(time.Now())
	card := recordstore.CardNumber("654321")

	tests := []struct {
		name    string
		lending recordstore.Lending
	}{
		{name: "borrowed without date", lending: recordstore.Lending{IsBorrowed: true, BorrowerCardNumber: &card}},
		{name: "borrowed without borrower", lending: recordstore.Lending{IsBorrowed: true, BorrowDate: &date}},
		{name: "available with date", lending: recordstore.Lending{BorrowDate: &date}},
		{name: "available with borrower", lending: recordstore.Lending{BorrowerCardNumber: &card}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.lending.IsConsistent())
		})
	}
}

func Test_GetConsistencyLevel(t *testing.T) {
	// arrange
	ctx := t.Context()

	// act + assert
	assert.Equal(t, recordstore.StrongConsistency, recordstore.GetConsistencyLevel(ctx))
	assert.Equal(t, recordstore.EventualConsistency, recordstore.GetConsistencyLevel(recordstore.WithEventualConsistency(ctx)))
	assert.Equal(t, recordstore.StrongConsistency, recordstore.GetConsistencyLevel(recordstore.WithStrongConsistency(ctx)))
	assert.Equal(t, "eventual", recordstore.EventualConsistency.String())
}
