package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-records-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/changebookstatus"
	"github.com/AntonStoeckl/library-records-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-records-go/library/features/query/bookbyserial"
	"github.com/AntonStoeckl/library-records-go/library/features/query/listbooks"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	paramSerial = "serial"

	detailBookStatusChanged = "Books status changed successfully"
	detailBookDeleted       = "Successfully deleted book"
)

func (s *Server) listBooks(c *gin.Context) {
	result, err := s.handlers.ListBooks.Handle(c.Request.Context(), listbooks.BuildQuery())
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponses(result.Books))
}

func (s *Server) addBook(c *gin.Context) {
	var request addBookRequest
	if err := s.bindJSON(c, &request); err != nil {
		s.respondWithError(c, err)
		return
	}

	command, err := addbook.BuildCommand(request.SerialNumber, request.Title, request.Author)
	if err != nil {
		s.respondWithError(c, errors.Join(recordstore.ErrInvalidRequest, err))
		return
	}

	if _, err = s.handlers.AddBook.Handle(c.Request.Context(), command); err != nil {
		if errors.Is(err, recordstore.ErrDuplicateKey) {
			s.respondWithDetail(
				c,
				http.StatusBadRequest,
				fmt.Sprintf("Book with serial number %s already exists", command.SerialNumber),
			)
			return
		}

		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookCreatedResponse{SerialNumber: command.SerialNumber.String()})
}

func (s *Server) bookBySerial(c *gin.Context) {
	serial, ok := s.serialFromPath(c)
	if !ok {
		return
	}

	query, err := bookbyserial.BuildQuery(serial)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	book, err := s.handlers.BookBySerial.Handle(c.Request.Context(), query)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

func (s *Server) changeBookStatus(c *gin.Context) {
	serial, ok := s.serialFromPath(c)
	if !ok {
		return
	}

	var request changeBookStatusRequest
	if err := s.bindJSON(c, &request); err != nil {
		s.respondWithError(c, err)
		return
	}

	borrowDate, err := request.borrowDate()
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	command, err := changebookstatus.BuildCommand(serial, *request.IsBorrowed, borrowDate, request.BorrowerCardNumber)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	if _, err = s.handlers.ChangeBookStatus.Handle(c.Request.Context(), command); err != nil {
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookChangedResponse{Detail: detailBookStatusChanged, SerialNumber: serial})
}

func (s *Server) removeBook(c *gin.Context) {
	serial, ok := s.serialFromPath(c)
	if !ok {
		return
	}

	command, err := removebook.BuildCommand(serial)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	result, err := s.handlers.RemoveBook.Handle(c.Request.Context(), command)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	if result.Idempotent {
		s.respondWithDetail(c, http.StatusNotFound, fmt.Sprintf("Book with %s not found", serial))
		return
	}

	c.JSON(http.StatusOK, bookChangedResponse{Detail: detailBookDeleted, SerialNumber: serial})
}

func (s *Server) serialFromPath(c *gin.Context) (string, bool) {
	serial := c.Param(paramSerial)
	if !recordstore.IsValidIdentifier(serial) {
		s.respondWithDetail(c, http.StatusBadRequest, detailInvalidSerialNumber)
		return "", false
	}

	return serial, true
}
