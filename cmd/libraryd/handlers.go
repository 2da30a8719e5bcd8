package main

import (
	"errors"
	"log/slog"

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
	"github.com/AntonStoeckl/library-records-go/library/shell/observable"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// buildHandlers creates all command and query handlers on top of the store, each wrapped with logging.
func buildHandlers(store *postgresengine.Store, logger *slog.Logger) (httpapi.Handlers, error) {
	addBook, errAddBook := wrapCommand[addbook.Command](addbook.NewCommandHandler(store), logger)
	changeBookStatus, errChangeBookStatus := wrapCommand[changebookstatus.Command](changebookstatus.NewCommandHandler(store), logger)
	removeBook, errRemoveBook := wrapCommand[removebook.Command](removebook.NewCommandHandler(store), logger)
	registerUser, errRegisterUser := wrapCommand[registeruser.Command](registeruser.NewCommandHandler(store), logger)
	removeUser, errRemoveUser := wrapCommand[removeuser.Command](removeuser.NewCommandHandler(store), logger)

	listBooks, errListBooks := wrapQuery[listbooks.Query, listbooks.BooksInLibrary](listbooks.NewQueryHandler(store), logger)
	bookBySerial, errBookBySerial := wrapQuery[bookbyserial.Query, recordstore.Book](bookbyserial.NewQueryHandler(store), logger)
	listUsers, errListUsers := wrapQuery[listusers.Query, listusers.RegisteredUsers](listusers.NewQueryHandler(store), logger)
	userByCard, errUserByCard := wrapQuery[userbycard.Query, recordstore.User](userbycard.NewQueryHandler(store), logger)
	userWithBooks, errUserWithBooks := wrapQuery[userwithbooks.Query, recordstore.UserWithBooks](userwithbooks.NewQueryHandler(store), logger)

	if err := errors.Join(
		errAddBook, errChangeBookStatus, errRemoveBook, errRegisterUser, errRemoveUser,
		errListBooks, errBookBySerial, errListUsers, errUserByCard, errUserWithBooks,
	); err != nil {
		return httpapi.Handlers{}, err
	}

	return httpapi.Handlers{
		AddBook:          addBook,
		ChangeBookStatus: changeBookStatus,
		RemoveBook:       removeBook,
		RegisterUser:     registerUser,
		RemoveUser:       removeUser,
		ListBooks:        listBooks,
		BookBySerial:     bookBySerial,
		ListUsers:        listUsers,
		UserByCard:       userByCard,
		UserWithBooks:    userWithBooks,
		Health:           store,
	}, nil
}

func wrapCommand[C shell.Command](core shell.CoreCommandHandler[C], logger *slog.Logger) (*observable.CommandWrapper[C], error) {
	return observable.NewCommandWrapper(core, observable.WithCommandContextualLogging[C](logger))
}

func wrapQuery[Q shell.Query, R any](core shell.CoreQueryHandler[Q, R], logger *slog.Logger) (*observable.QueryWrapper[Q, R], error) {
	return observable.NewQueryWrapper(core, observable.WithQueryContextualLogging[Q, R](logger))
}
