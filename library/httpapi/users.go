package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-records-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-records-go/library/features/command/removeuser"
	"github.com/AntonStoeckl/library-records-go/library/features/query/listusers"
	"github.com/AntonStoeckl/library-records-go/library/features/query/userbycard"
	"github.com/AntonStoeckl/library-records-go/library/features/query/userwithbooks"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	paramCard          = "card"
	queryParamWithBooks = "with_books"

	detailUserCreated = "Created new user successfully"
	detailUserDeleted = "Deleted user successfully"
)

func (s *Server) listUsers(c *gin.Context) {
	result, err := s.handlers.ListUsers.Handle(c.Request.Context(), listusers.BuildQuery())
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(result.Users))
}

func (s *Server) registerUser(c *gin.Context) {
	var request registerUserRequest
	if err := s.bindJSON(c, &request); err != nil {
		s.respondWithError(c, err)
		return
	}

	command, err := registeruser.BuildCommand(request.CardNumber, request.FirstName, request.LastName)
	if err != nil {
		s.respondWithError(c, errors.Join(recordstore.ErrInvalidRequest, err))
		return
	}

	if _, err = s.handlers.RegisterUser.Handle(c.Request.Context(), command); err != nil {
		if errors.Is(err, recordstore.ErrDuplicateKey) {
			s.respondWithDetail(
				c,
				http.StatusBadRequest,
				fmt.Sprintf("User with card number %s already exists", command.CardNumber),
			)
			return
		}

		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userChangedResponse{Detail: detailUserCreated, CardNumber: command.CardNumber.String()})
}

// userByCard returns the user with the borrowed books, or only the user if with_books=false.
func (s *Server) userByCard(c *gin.Context) {
	card, ok := s.cardFromPath(c)
	if !ok {
		return
	}

	withBooks, err := strconv.ParseBool(c.DefaultQuery(queryParamWithBooks, "true"))
	if err != nil {
		s.respondWithError(c, errors.Join(recordstore.ErrInvalidRequest, fmt.Errorf("%s must be a boolean", queryParamWithBooks)))
		return
	}

	if !withBooks {
		s.userOnly(c, card)
		return
	}

	query, err := userwithbooks.BuildQuery(card)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	result, err := s.handlers.UserWithBooks.Handle(c.Request.Context(), query)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserWithBooksResponse(result))
}

func (s *Server) userOnly(c *gin.Context, card string) {
	query, err := userbycard.BuildQuery(card)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	user, err := s.handlers.UserByCard.Handle(c.Request.Context(), query)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) removeUser(c *gin.Context) {
	card, ok := s.cardFromPath(c)
	if !ok {
		return
	}

	command, err := removeuser.BuildCommand(card)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	result, err := s.handlers.RemoveUser.Handle(c.Request.Context(), command)
	if err != nil {
		s.respondWithError(c, err)
		return
	}

	if result.Idempotent {
		s.respondWithDetail(c, http.StatusNotFound, detailUserNotFound)
		return
	}

	c.JSON(http.StatusOK, userChangedResponse{Detail: detailUserDeleted, CardNumber: card})
}

func (s *Server) cardFromPath(c *gin.Context) (string, bool) {
	card := c.Param(paramCard)
	if !recordstore.IsValidIdentifier(card) {
		s.respondWithDetail(c, http.StatusBadRequest, detailInvalidCardNumber)
		return "", false
	}

	return card, true
}
