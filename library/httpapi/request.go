package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/AntonStoeckl/library-records-go/recordstore"
)

var strictJSON = jsoniter.Config{
	EscapeHTML:             true,
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
}.Froze()

type addBookRequest struct {
	SerialNumber string `json:"serial_number" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Author       string `json:"author" binding:"required"`
}

type registerUserRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
}

type changeBookStatusRequest struct {
	IsBorrowed         *bool   `json:"is_borrowed" binding:"required"`
	BorrowedDate       *string `json:"borrowed_date" binding:"omitempty,datetime=2006-01-02"`
	BorrowerCardNumber *string `json:"borrower_card_number"`
}

func (r changeBookStatusRequest) borrowDate() (*time.Time, error) {
	if r.BorrowedDate == nil {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, *r.BorrowedDate)
	if err != nil {
		return nil, errors.Join(recordstore.ErrInvalidRequest, err)
	}

	return &date, nil
}

// newRequestValidator returns a validator that reads gin's binding tags and reports json field names.
func newRequestValidator() *validator.Validate {
	validate := validator.New()
	validate.SetTagName("binding")
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return validate
}

// bindJSON strictly decodes the request body into target and validates it.
// All failures are reported as recordstore.ErrInvalidRequest.
func (s *Server) bindJSON(c *gin.Context, target any) error {
	if c.Request.Body == nil {
		return errors.Join(recordstore.ErrInvalidRequest, errors.New("request body is missing"))
	}

	if err := strictJSON.NewDecoder(c.Request.Body).Decode(target); err != nil {
		return errors.Join(recordstore.ErrInvalidRequest, fmt.Errorf("request body is not valid: %w", err))
	}

	if err := s.validate.Struct(target); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return errors.Join(recordstore.ErrInvalidRequest, errors.New(describeValidationErrors(validationErrors)))
		}

		return errors.Join(recordstore.ErrInvalidRequest, err)
	}

	return nil
}

func describeValidationErrors(validationErrors validator.ValidationErrors) string {
	messages := lo.Map(validationErrors, func(fieldError validator.FieldError, _ int) string {
		return fmt.Sprintf("field %s failed on the %s rule", fieldError.Field(), fieldError.Tag())
	})

	return strings.Join(messages, "; ")
}
