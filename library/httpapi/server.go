package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

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
	"github.com/AntonStoeckl/library-records-go/library/shell"
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

const defaultRequestTimeout = 5 * time.Second

var (
	// ErrMissingHandler is returned when a handler needed by a route was not provided.
	ErrMissingHandler = errors.New("missing handler")

	// ErrInvalidRequestTimeout is returned when the request timeout is not positive.
	ErrInvalidRequestTimeout = errors.New("request timeout must be positive")
)

// HealthChecker reports whether the record store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handlers bundles the command and query handlers the routes dispatch to.
type Handlers struct {
	AddBook          shell.CoreCommandHandler[addbook.Command]
	ChangeBookStatus shell.CoreCommandHandler[changebookstatus.Command]
	RemoveBook       shell.CoreCommandHandler[removebook.Command]
	RegisterUser     shell.CoreCommandHandler[registeruser.Command]
	RemoveUser       shell.CoreCommandHandler[removeuser.Command]

	ListBooks     shell.CoreQueryHandler[listbooks.Query, listbooks.BooksInLibrary]
	BookBySerial  shell.CoreQueryHandler[bookbyserial.Query, recordstore.Book]
	ListUsers     shell.CoreQueryHandler[listusers.Query, listusers.RegisteredUsers]
	UserByCard    shell.CoreQueryHandler[userbycard.Query, recordstore.User]
	UserWithBooks shell.CoreQueryHandler[userwithbooks.Query, recordstore.UserWithBooks]

	Health HealthChecker
}

// Server maps HTTP requests to the library handlers.
type Server struct {
	handlers         Handlers
	validate         *validator.Validate
	requestTimeout   time.Duration
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a Server.
type Option func(*Server) error

// WithRequestTimeout bounds the time a single request may spend in the handlers.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Server) error {
		if timeout <= 0 {
			return ErrInvalidRequestTimeout
		}

		s.requestTimeout = timeout

		return nil
	}
}

// WithLogger sets the logger for access and error logs.
func WithLogger(logger shell.Logger) Option {
	return func(s *Server) error {
		s.logger = logger

		return nil
	}
}

// WithContextualLogger sets a context-aware logger for access and error logs, it takes precedence over WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(s *Server) error {
		s.contextualLogger = logger

		return nil
	}
}

// NewServer creates a new Server.
// All handlers must be set, otherwise ErrMissingHandler is returned.
func NewServer(handlers Handlers, options ...Option) (*Server, error) {
	if err := handlers.validate(); err != nil {
		return nil, err
	}

	server := &Server{
		handlers:       handlers,
		validate:       newRequestValidator(),
		requestTimeout: defaultRequestTimeout,
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, err
		}
	}

	return server, nil
}

// Router builds the gin engine with all routes and middlewares.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), s.accessLog(), cors(), s.timeout())

	router.GET("/", s.index)
	router.GET("/health", s.health)

	books := router.Group("/books")
	{
		books.GET("", s.listBooks)
		books.POST("", s.addBook)
		books.GET("/:serial", s.bookBySerial)
		books.PATCH("/:serial", s.changeBookStatus)
		books.DELETE("/:serial", s.removeBook)
	}

	users := router.Group("/users")
	{
		users.GET("", s.listUsers)
		users.POST("", s.registerUser)
		users.GET("/:card", s.userByCard)
		users.DELETE("/:card", s.removeUser)
	}

	return router
}

func (s *Server) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"detail": "library records service"})
}

func (s *Server) health(c *gin.Context) {
	if err := s.handlers.Health.Ping(c.Request.Context()); err != nil {
		s.respondWithError(c, errors.Join(recordstore.ErrStoreUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h Handlers) validate() error {
	checks := []struct {
		name    string
		missing bool
	}{
		{"AddBook", h.AddBook == nil},
		{"ChangeBookStatus", h.ChangeBookStatus == nil},
		{"RemoveBook", h.RemoveBook == nil},
		{"RegisterUser", h.RegisterUser == nil},
		{"RemoveUser", h.RemoveUser == nil},
		{"ListBooks", h.ListBooks == nil},
		{"BookBySerial", h.BookBySerial == nil},
		{"ListUsers", h.ListUsers == nil},
		{"UserByCard", h.UserByCard == nil},
		{"UserWithBooks", h.UserWithBooks == nil},
		{"Health", h.Health == nil},
	}

	for _, check := range checks {
		if check.missing {
			return errors.Join(ErrMissingHandler, fmt.Errorf("%s handler is nil", check.name))
		}
	}

	return nil
}
