package registeruser_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	. "github.com/AntonStoeckl/library-records-go/testutil/postgresengine/helper"                 //nolint:revive
	. "github.com/AntonStoeckl/library-records-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

const tablePrefix = "registeruser"

func Test_BuildCommand_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		card        string
		firstName   string
		lastName    string
		expectedErr error
	}{
		{name: "invalid card number", card: "6543210", firstName: "Grace", lastName: "Hopper", expectedErr: recordstore.ErrInvalidIdentifier},
		{name: "empty first name", card: "654321", firstName: "", lastName: "Hopper", expectedErr: recordstore.ErrInvalidRequest},
		{name: "blank last name", card: "654321", firstName: "Grace", lastName: "  ", expectedErr: recordstore.ErrInvalidRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := registeruser.BuildCommand(tc.card, tc.firstName, tc.lastName)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	handler := registeruser.NewCommandHandler(wrapper.GetStore())
	command, err := registeruser.BuildCommand("654321", "Grace", "Hopper")
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Idempotent)

	user, found := ReadUser(t, ctx, wrapper.GetStore(), "654321")
	require.True(t, found)
	assert.Equal(t, recordstore.User{CardNumber: "654321", FirstName: "Grace", LastName: "Hopper"}, user)
}

func Test_CommandHandler_Handle_Error_DuplicateCardNumber(t *testing.T) {
	// setup
	ctx, wrapper, cleanup := setupTestEnvironment(t)
	defer cleanup()

	GivenUserWasRegistered(t, ctx, wrapper.GetStore(), "654321")
	handler := registeruser.NewCommandHandler(wrapper.GetStore())
	command, err := registeruser.BuildCommand("654321", "Grace", "Hopper")
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, recordstore.ErrDuplicateKey)

	user, _ := ReadUser(t, ctx, wrapper.GetStore(), "654321")
	assert.Equal(t, "Ada", user.FirstName)
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
