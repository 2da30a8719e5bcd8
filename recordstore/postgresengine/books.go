package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine/internal/adapters"
)

const (
	colSerialNumber       = "serial_number"
	colTitle              = "title"
	colAuthor             = "author"
	colIsBorrowed         = "is_borrowed"
	colBorrowDate         = "borrow_date"
	colBorrowerCardNumber = "borrower_card_number"
	castDate              = "?::date"
	actionListBooks       = "list books"
	actionGetBook         = "get book"
	actionLockBook        = "lock book"
	actionCreateBook      = "create book"
	actionDeleteBook      = "delete book"
	actionSaveLending     = "save lending"
	actionBorrowedBy      = "books borrowed by user"
)

var bookColumns = []any{colSerialNumber, colTitle, colAuthor, colIsBorrowed, colBorrowDate, colBorrowerCardNumber}

// BookStore reads and writes book records inside one transaction.
type BookStore struct {
	tx *Tx
}

type bookRow struct {
	serialNumber       string
	title              string
	author             string
	isBorrowed         bool
	borrowDate         sql.NullTime
	borrowerCardNumber sql.NullString
}

// List returns all books ordered by serial number.
func (bs BookStore) List(ctx context.Context) ([]recordstore.Book, error) {
	stmt := bs.selectBooks().Order(goqu.I(colSerialNumber).Asc())

	return bs.queryBooks(ctx, stmt, actionListBooks)
}

// Get returns the book with the given serial number, found is false if it does not exist.
func (bs BookStore) Get(ctx context.Context, serial recordstore.SerialNumber) (recordstore.Book, bool, error) {
	stmt := bs.selectBooks().Where(goqu.C(colSerialNumber).Eq(serial.String()))

	return bs.queryOneBook(ctx, stmt, actionGetBook)
}

// GetForUpdate returns the book with the given serial number and locks its row until the transaction ends.
// It is only usable inside Store.Transact.
func (bs BookStore) GetForUpdate(ctx context.Context, serial recordstore.SerialNumber) (recordstore.Book, bool, error) {
	stmt := bs.selectBooks().
		Where(goqu.C(colSerialNumber).Eq(serial.String())).
		ForUpdate(exp.Wait)

	return bs.queryOneBook(ctx, stmt, actionLockBook)
}

// Create inserts a new available book.
// It returns recordstore.ErrInvalidIdentifier for a malformed serial number without touching the database
// and recordstore.ErrDuplicateKey if a book with this serial number already exists.
func (bs BookStore) Create(
	ctx context.Context,
	serial recordstore.SerialNumber,
	title string,
	author string,
) (recordstore.Book, error) {
	if _, err := recordstore.ValidateSerialNumber(serial.String()); err != nil {
		return recordstore.Book{}, err
	}

	stmt := bs.tx.builder().
		Insert(bs.tx.store.booksTableName).
		Rows(goqu.Record{
			colSerialNumber: serial.String(),
			colTitle:        title,
			colAuthor:       author,
			colIsBorrowed:   false,
		}).
		Returning(bookColumns...)

	books, err := bs.queryBooks(ctx, stmt, actionCreateBook)
	if err != nil {
		return recordstore.Book{}, err
	}

	if len(books) != 1 {
		return recordstore.Book{}, errors.Join(recordstore.ErrStoreUnavailable, fmt.Errorf("insert returned %d rows", len(books)))
	}

	bs.tx.store.logOperation(ctx, actionCreateBook, logAttrSerialNumber, serial.String())

	return books[0], nil
}

// Delete removes the book with the given serial number and returns the removed record.
// Deleting an absent book is not an error, found is false in that case.
func (bs BookStore) Delete(ctx context.Context, serial recordstore.SerialNumber) (recordstore.Book, bool, error) {
	stmt := bs.tx.builder().
		Delete(bs.tx.store.booksTableName).
		Where(goqu.C(colSerialNumber).Eq(serial.String())).
		Returning(bookColumns...)

	book, found, err := bs.queryOneBook(ctx, stmt, actionDeleteBook)
	if err != nil || !found {
		return book, found, err
	}

	bs.tx.store.logOperation(ctx, actionDeleteBook, logAttrSerialNumber, serial.String())

	return book, true, nil
}

// SaveLending writes the three lending columns of a book in one statement.
// It returns recordstore.ErrBookNotFound if the book does not exist and recordstore.ErrUserNotFound
// if the borrower does not exist.
func (bs BookStore) SaveLending(ctx context.Context, serial recordstore.SerialNumber, lending recordstore.Lending) error {
	if !lending.IsConsistent() {
		return errors.Join(recordstore.ErrInvalidRequest, fmt.Errorf("inconsistent lending state for book %s", serial))
	}

	record := goqu.Record{
		colIsBorrowed:         lending.IsBorrowed,
		colBorrowDate:         nil,
		colBorrowerCardNumber: nil,
	}

	if lending.IsBorrowed {
		record[colBorrowDate] = goqu.L(castDate, lending.BorrowDate.Format(time.DateOnly))
		record[colBorrowerCardNumber] = lending.BorrowerCardNumber.String()
	}

	stmt := bs.tx.builder().
		Update(bs.tx.store.booksTableName).
		Set(record).
		Where(goqu.C(colSerialNumber).Eq(serial.String()))

	rowsAffected, err := bs.tx.exec(ctx, stmt, actionSaveLending)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.Join(recordstore.ErrBookNotFound, fmt.Errorf("book %s does not exist", serial))
	}

	bs.tx.store.logOperation(ctx, actionSaveLending, logAttrSerialNumber, serial.String(), colIsBorrowed, lending.IsBorrowed)

	return nil
}

// BorrowedBy returns all books currently borrowed by the given user, ordered by serial number.
func (bs BookStore) BorrowedBy(ctx context.Context, card recordstore.CardNumber) ([]recordstore.Book, error) {
	stmt := bs.selectBooks().
		Where(goqu.C(colBorrowerCardNumber).Eq(card.String())).
		Order(goqu.I(colSerialNumber).Asc())

	return bs.queryBooks(ctx, stmt, actionBorrowedBy)
}

func (bs BookStore) selectBooks() *goqu.SelectDataset {
	return bs.tx.builder().
		From(bs.tx.store.booksTableName).
		Select(bookColumns...)
}

func (bs BookStore) queryOneBook(ctx context.Context, stmt sqlBuilder, action string) (recordstore.Book, bool, error) {
	books, err := bs.queryBooks(ctx, stmt, action)
	if err != nil {
		return recordstore.Book{}, false, err
	}

	if len(books) == 0 {
		return recordstore.Book{}, false, nil
	}

	return books[0], true, nil
}

func (bs BookStore) queryBooks(ctx context.Context, stmt sqlBuilder, action string) ([]recordstore.Book, error) {
	books := make([]recordstore.Book, 0)

	_, err := bs.tx.query(ctx, stmt, action, func(rows adapters.DBRows) error {
		row := bookRow{}

		scanErr := rows.Scan(
			&row.serialNumber,
			&row.title,
			&row.author,
			&row.isBorrowed,
			&row.borrowDate,
			&row.borrowerCardNumber,
		)
		if scanErr != nil {
			return scanErr
		}

		books = append(books, row.toBook())

		return nil
	})

	if err != nil {
		return nil, err
	}

	return books, nil
}

func (r bookRow) toBook() recordstore.Book {
	book := recordstore.Book{
		SerialNumber: recordstore.SerialNumber(r.serialNumber),
		Title:        r.title,
		Author:       r.author,
		IsBorrowed:   r.isBorrowed,
	}

	if r.borrowDate.Valid {
		date := recordstore.ToBorrowDate(r.borrowDate.Time)
		book.BorrowDate = &date
	}

	if r.borrowerCardNumber.Valid {
		card := recordstore.CardNumber(r.borrowerCardNumber.String)
		book.BorrowerCardNumber = &card
	}

	return book
}
