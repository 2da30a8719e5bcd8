package httpapi

import (
	"time"

	"github.com/samber/lo"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

type bookResponse struct {
	SerialNumber       string  `json:"serial_number"`
	Title              string  `json:"title"`
	Author             string  `json:"author"`
	IsBorrowed         bool    `json:"is_borrowed"`
	BorrowDate         *string `json:"borrow_date"`
	BorrowerCardNumber *string `json:"borrower_card_number"`
}

type userResponse struct {
	CardNumber string `json:"card_number"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

type userWithBooksResponse struct {
	User          userResponse   `json:"user"`
	BorrowedBooks []bookResponse `json:"borrowed_books"`
}

type bookChangedResponse struct {
	Detail       string `json:"detail"`
	SerialNumber string `json:"serial_number"`
}

type bookCreatedResponse struct {
	SerialNumber string `json:"serial_number"`
}

type userChangedResponse struct {
	Detail     string `json:"detail"`
	CardNumber string `json:"card_number"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func toBookResponse(book recordstore.Book) bookResponse {
	response := bookResponse{
		SerialNumber: book.SerialNumber.String(),
		Title:        book.Title,
		Author:       book.Author,
		IsBorrowed:   book.IsBorrowed,
	}

	if book.BorrowDate != nil {
		response.BorrowDate = lo.ToPtr(book.BorrowDate.Format(time.DateOnly))
	}

	if book.BorrowerCardNumber != nil {
		response.BorrowerCardNumber = lo.ToPtr(book.BorrowerCardNumber.String())
	}

	return response
}

func toBookResponses(books []recordstore.Book) []bookResponse {
	return lo.Map(books, func(book recordstore.Book, _ int) bookResponse {
		return toBookResponse(book)
	})
}

func toUserResponse(user recordstore.User) userResponse {
	return userResponse{
		CardNumber: user.CardNumber.String(),
		FirstName:  user.FirstName,
		LastName:   user.LastName,
	}
}

func toUserResponses(users []recordstore.User) []userResponse {
	return lo.Map(users, func(user recordstore.User, _ int) userResponse {
		return toUserResponse(user)
	})
}

func toUserWithBooksResponse(userWithBooks recordstore.UserWithBooks) userWithBooksResponse {
	return userWithBooksResponse{
		User:          toUserResponse(userWithBooks.User),
		BorrowedBooks: toBookResponses(userWithBooks.BorrowedBooks),
	}
}
