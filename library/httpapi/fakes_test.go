package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/changebookstatus"
	"github.com/AntonStoeckl/library-records-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-records-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/removeuser"
	"github.com/AntonStoeckl/library-records-go/library/features/query/bookbyserial"
	"github.com/AntonStoeckl/library-records-go/library/features/query/listbooks"
	"github.com/AntonStoeckl/library-records-go/library/features/query/listusers"
	"github.com/AntonStoeckl/library-records-go/library/features/query/userbycard"
	"github.com/AntonStoeckl/library-records-go/library/features/query/userwithbooks"
	"github.com/AntonStoeckl/library-records-go/library/httpapi"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

type fakeCommandHandler[C shell.Command] struct {
	mu     sync.Mutex
	result shell.HandlerResult
	err    error
	calls  []C
}

func (h *fakeCommandHandler[C]) Handle(_ context.Context, command C) (shell.HandlerResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, command)

	return h.result, h.err
}

func (h *fakeCommandHandler[C]) Calls() []C {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]C(nil), h.calls...)
}

type fakeQueryHandler[Q shell.Query, R any] struct {
	mu             sync.Mutex
	result         R
	err            error
	calls          []Q
	blockUntilDone bool
}

func (h *fakeQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	h.mu.Lock()
	h.calls = append(h.calls, query)
	h.mu.Unlock()

	if h.blockUntilDone {
		<-ctx.Done()

		var zero R
		return zero, ctx.Err()
	}

	return h.result, h.err
}

func (h *fakeQueryHandler[Q, R]) Calls() []Q {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]Q(nil), h.calls...)
}

type fakeHealthChecker struct {
	err error
}

func (h fakeHealthChecker) Ping(_ context.Context) error {
	return h.err
}

type fakes struct {
	addBook          *fakeCommandHandler[addbook.Command]
	changeBookStatus *fakeCommandHandler[changebookstatus.Command]
	removeBook       *fakeCommandHandler[removebook.Command]
	registerUser     *fakeCommandHandler[registeruser.Command]
	removeUser       *fakeCommandHandler[removeuser.Command]
	listBooks        *fakeQueryHandler[listbooks.Query, listbooks.BooksInLibrary]
	bookBySerial     *fakeQueryHandler[bookbyserial.Query, recordstore.Book]
	listUsers        *fakeQueryHandler[listusers.Query, listusers.RegisteredUsers]
	userByCard       *fakeQueryHandler[userbycard.Query, recordstore.User]
	userWithBooks    *fakeQueryHandler[userwithbooks.Query, recordstore.UserWithBooks]
	health           *fakeHealthChecker
}

func newFakes() *fakes {
	return &fakes{
		addBook:          &fakeCommandHandler[addbook.Command]{},
		changeBookStatus: &fakeCommandHandler[changebookstatus.Command]{},
		removeBook:       &fakeCommandHandler[removebook.Command]{},
		registerUser:     &fakeCommandHandler[registeruser.Command]{},
		removeUser:       &fakeCommandHandler[removeuser.Command]{},
		listBooks:        &fakeQueryHandler[listbooks.Query, listbooks.BooksInLibrary]{},
		bookBySerial:     &fakeQueryHandler[bookbyserial.Query, recordstore.Book]{},
		listUsers:        &fakeQueryHandler[listusers.Query, listusers.RegisteredUsers]{},
		userByCard:       &fakeQueryHandler[userbycard.Query, recordstore.User]{},
		userWithBooks:    &fakeQueryHandler[userwithbooks.Query, recordstore.UserWithBooks]{},
		health:           &fakeHealthChecker{},
	}
}

func (f *fakes) handlers() httpapi.Handlers {
	return httpapi.Handlers{
		AddBook:          f.addBook,
		ChangeBookStatus: f.changeBookStatus,
		RemoveBook:       f.removeBook,
		RegisterUser:     f.registerUser,
		RemoveUser:       f.removeUser,
		ListBooks:        f.listBooks,
		BookBySerial:     f.bookBySerial,
		ListUsers:        f.listUsers,
		UserByCard:       f.userByCard,
		UserWithBooks:    f.userWithBooks,
		Health:           f.health,
	}
}

func newTestRouter(t *testing.T, f *fakes, options ...httpapi.Option) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	server, err := httpapi.NewServer(f.handlers(), options...)
	require.NoError(t, err)

	return server.Router()
}

func serve(router http.Handler, method string, target string, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func borrowedBookFixture() recordstore.Book {
	card := recordstore.CardNumber("654321")
	date := recordstore.ToBorrowDate(fixtureDate())

	return recordstore.Book{
		SerialNumber:       "123456",
		Title:              "Learning Domain-Driven Design",
		Author:             "Vlad Khononov",
		IsBorrowed:         true,
		BorrowDate:         &date,
		BorrowerCardNumber: &card,
	}
}
