package postgresengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine/internal/adapters"
)

const (
	colCardNumber    = "card_number"
	colFirstName     = "first_name"
	colLastName      = "last_name"
	actionListUsers  = "list users"
	actionGetUser    = "get user"
	actionUserExists = "user exists"
	actionCreateUser = "create user"
	actionDeleteUser = "delete user"
)

var userColumns = []any{colCardNumber, colFirstName, colLastName}

// UserStore reads and writes user records inside one transaction.
type UserStore struct {
	tx *Tx
}

// List returns all users ordered by card number.
func (us UserStore) List(ctx context.Context) ([]recordstore.User, error) {
	stmt := us.selectUsers().Order(goqu.I(colCardNumber).Asc())

	return us.queryUsers(ctx, stmt, actionListUsers)
}

// Get returns the user with the given card number, found is false if it does not exist.
func (us UserStore) Get(ctx context.Context, card recordstore.CardNumber) (recordstore.User, bool, error) {
	stmt := us.selectUsers().Where(goqu.C(colCardNumber).Eq(card.String()))

	return us.queryOneUser(ctx, stmt, actionGetUser)
}

// Exists reports whether a user with the given card number exists.
func (us UserStore) Exists(ctx context.Context, card recordstore.CardNumber) (bool, error) {
	stmt := us.tx.builder().
		From(us.tx.store.usersTableName).
		Select(goqu.L("1")).
		Where(goqu.C(colCardNumber).Eq(card.String())).
		Limit(1)

	rowCount, err := us.tx.query(ctx, stmt, actionUserExists, func(_ adapters.DBRows) error {
		return nil
	})
	if err != nil {
		return false, err
	}

	return rowCount > 0, nil
}

// Create inserts a new user.
// It returns recordstore.ErrInvalidIdentifier for a malformed card number without touching the database
// and recordstore.ErrDuplicateKey if a user with this card number already exists.
func (us UserStore) Create(
	ctx context.Context,
	card recordstore.CardNumber,
	firstName string,
	lastName string,
) (recordstore.User, error) {
	if _, err := recordstore.ValidateCardNumber(card.String()); err != nil {
		return recordstore.User{}, err
	}

	stmt := us.tx.builder().
		Insert(us.tx.store.usersTableName).
		Rows(goqu.Record{
			colCardNumber: card.String(),
			colFirstName:  firstName,
			colLastName:   lastName,
		}).
		Returning(userColumns...)

	users, err := us.queryUsers(ctx, stmt, actionCreateUser)
	if err != nil {
		return recordstore.User{}, err
	}

	if len(users) != 1 {
		return recordstore.User{}, errors.Join(recordstore.ErrStoreUnavailable, fmt.Errorf("insert returned %d rows", len(users)))
	}

	us.tx.store.logOperation(ctx, actionCreateUser, logAttrCardNumber, card.String())

	return users[0], nil
}

// Delete removes the user with the given card number and returns the removed record.
// Deleting an absent user is not an error, found is false in that case.
// Books borrowed by the user must have been returned before, otherwise the schema rejects the delete.
func (us UserStore) Delete(ctx context.Context, card recordstore.CardNumber) (recordstore.User, bool, error) {
	stmt := us.tx.builder().
		Delete(us.tx.store.usersTableName).
		Where(goqu.C(colCardNumber).Eq(card.String())).
		Returning(userColumns...)

	user, found, err := us.queryOneUser(ctx, stmt, actionDeleteUser)
	if sqlState(err) == sqlStateForeignKeyViolation {
		return recordstore.User{}, false, errors.Join(recordstore.ErrUserHasBorrowedBooks, driverError(err))
	}

	if err != nil || !found {
		return user, found, err
	}

	us.tx.store.logOperation(ctx, actionDeleteUser, logAttrCardNumber, card.String())

	return user, true, nil
}

// BorrowedBooks returns all books currently borrowed by the given user.
// It reads through the same transaction, so lending changes made earlier in the transaction are visible.
func (us UserStore) BorrowedBooks(ctx context.Context, card recordstore.CardNumber) ([]recordstore.Book, error) {
	return us.tx.Books().BorrowedBy(ctx, card)
}

func (us UserStore) selectUsers() *goqu.SelectDataset {
	return us.tx.builder().
		From(us.tx.store.usersTableName).
		Select(userColumns...)
}

func (us UserStore) queryOneUser(ctx context.Context, stmt sqlBuilder, action string) (recordstore.User, bool, error) {
	users, err := us.queryUsers(ctx, stmt, action)
	if err != nil {
		return recordstore.User{}, false, err
	}

	if len(users) == 0 {
		return recordstore.User{}, false, nil
	}

	return users[0], true, nil
}

func (us UserStore) queryUsers(ctx context.Context, stmt sqlBuilder, action string) ([]recordstore.User, error) {
	users := make([]recordstore.User, 0)

	_, err := us.tx.query(ctx, stmt, action, func(rows adapters.DBRows) error {
		var card string
		user := recordstore.User{}

		if scanErr := rows.Scan(&card, &user.FirstName, &user.LastName); scanErr != nil {
			return scanErr
		}

		user.CardNumber = recordstore.CardNumber(card)
		users = append(users, user)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return users, nil
}
