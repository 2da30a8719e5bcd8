package listbooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/features/query/listbooks"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	. "github.com/AntonStoeckl/library-records-go/testutil/postgresengine/helper"                 //nolint:revive
	. "github.com/AntonStoeckl/library-records-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

const tablePrefix = "listbooks"

func Test_QueryHandler_Handle_ReturnsAllBooksOrderedBySerialNumber(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	store := wrapper.GetStore()
	GivenBookWasAdded(t, ctx, store, "300000")
	GivenBookWasAdded(t, ctx, store, "100000")
	GivenBookWasAdded(t, ctx, store, "200000")
	GivenUserWasRegistered(t, ctx, store, "654321")
	GivenBookWasBorrowed(t, ctx, store, "200000", "654321")

	handler := listbooks.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, listbooks.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.Equal(
		t,
		[]recordstore.SerialNumber{"100000", "200000", "300000"},
		lo.Map(result.Books, func(book recordstore.Book, _ int) recordstore.SerialNumber { return book.SerialNumber }),
	)
	assert.True(t, result.Books[1].IsBorrowed)

	for _, book := range result.Books {
		AssertLendingInvariant(t, book)
	}
}

func Test_QueryHandler_Handle_EmptyLibrary(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handler := listbooks.NewQueryHandler(wrapper.GetStore())

	// act
	result, err := handler.Handle(ctx, listbooks.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Books)
	assert.Empty(t, result.Books)
}

func setupTestEnvironment(t *testing.T) (context.Context, Wrapper, func()) {
	t.Helper()

	ctxWithTimeout, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	wrapper := CreateWrapperWithTestConfig(t, tablePrefix)

	cleanup := func() {
		cancel()
		wrapper.Close()
	}

	CleanUp(t, wrapper)

	return ctxWithTimeout, wrapper, cleanup
}
