package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records-go/library/shell"
)

const (
	headerRequestID  = "X-Request-ID"
	contextRequestID = "request_id"

	logMsgRequestHandled = "http request handled"
	logAttrMethod        = "method"
	logAttrPath          = "path"
	logAttrHTTPStatus    = "http_status"
	logAttrRequestID     = "request_id"
)

// requestID keeps an incoming X-Request-ID or generates a new one and echoes it in the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(contextRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// cors allows every origin, method and header.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *Server) timeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			logAttrMethod, c.Request.Method,
			logAttrPath, c.FullPath(),
			logAttrHTTPStatus, c.Writer.Status(),
			logAttrRequestID, c.GetString(contextRequestID),
			shell.LogAttrDurationMS, shell.ToMilliseconds(time.Since(start)),
		}

		if s.contextualLogger != nil {
			s.contextualLogger.InfoContext(c.Request.Context(), logMsgRequestHandled, args...)
		} else if s.logger != nil {
			s.logger.Info(logMsgRequestHandled, args...)
		}
	}
}
