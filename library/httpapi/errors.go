package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-records-go/library/features/command/removeuser"
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const (
	detailBookNotFound         = "Book not found"
	detailUserNotFound         = "User not found"
	detailInvalidSerialNumber  = "Serial number must be 6 digits"
	detailInvalidCardNumber    = "Card number must be 6 digits"
	detailBookAlreadyBorrowed  = "Book is already borrowed"
	detailBookAlreadyAvailable = "Book is already available"
	detailDatabaseError        = "Database error"
	detailRequestTimedOut      = "Request timed out"
	detailInternalError        = "Internal server error"

	logMsgRequestFailed = "http request failed"
)

// statusFor maps an error to the HTTP status code and the detail message of the response.
// Order matters: joined errors may match several sentinels.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, recordstore.ErrInvalidRequest):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, recordstore.ErrInvalidIdentifier):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, recordstore.ErrConcurrencyConflict),
		errors.Is(err, recordstore.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, detailDatabaseError

	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, detailRequestTimedOut

	case errors.Is(err, removeuser.ErrReturningBorrowedBooksFailed),
		errors.Is(err, recordstore.ErrUserHasBorrowedBooks):
		return http.StatusInternalServerError, err.Error()

	case errors.Is(err, recordstore.ErrBookNotFound):
		return http.StatusNotFound, detailBookNotFound

	case errors.Is(err, recordstore.ErrUserNotFound):
		return http.StatusNotFound, detailUserNotFound

	case errors.Is(err, recordstore.ErrDuplicateKey):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, recordstore.ErrBookAlreadyBorrowed):
		return http.StatusBadRequest, detailBookAlreadyBorrowed

	case errors.Is(err, recordstore.ErrBookAlreadyAvailable):
		return http.StatusBadRequest, detailBookAlreadyAvailable

	default:
		return http.StatusInternalServerError, detailInternalError
	}
}

func (s *Server) respondWithError(c *gin.Context, err error) {
	status, detail := statusFor(err)

	if status >= http.StatusInternalServerError {
		s.logError(c, status, err)
	}

	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}

func (s *Server) respondWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}

func (s *Server) logError(c *gin.Context, status int, err error) {
	args := []any{
		logAttrMethod, c.Request.Method,
		logAttrPath, c.FullPath(),
		logAttrHTTPStatus, status,
		logAttrRequestID, c.GetString(contextRequestID),
		shell.LogAttrError, err.Error(),
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(c.Request.Context(), logMsgRequestFailed, args...)
	} else if s.logger != nil {
		s.logger.Error(logMsgRequestFailed, args...)
	}
}
