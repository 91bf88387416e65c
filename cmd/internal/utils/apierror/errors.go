package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Detail string `json:"detail"`
	Status int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

// StructuredError carries field level problems, keyed by the field's JSON name.
type StructuredError struct {
	Detail map[string][]string `json:"detail"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Detail[field] = append(s.Detail[field], problem)
}

var (
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")
	NoteNotFoundError   = NewSimple(http.StatusNotFound, "Note not found")

	ForbiddenError       = NewSimple(http.StatusForbidden, "Forbidden")
	TooManyRequestsError = NewSimple(http.StatusTooManyRequests, "Too many requests")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	problems := NewStructured(http.StatusUnprocessableEntity)
	for _, fe := range ve {
		field := fe.Field()

		// Aliases (e.g. "titlelen") report the expanded tag here.
		switch fe.ActualTag() {
		case "required":
			problems.Add(field, "This field is required")
		case "min":
			problems.Add(field, "Value is too short, min: "+fe.Param())
		case "max":
			problems.Add(field, "Value is too long, max: "+fe.Param())

		default:
			problems.Add(field, "Invalid value provided")
		}
	}
	return problems
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Detail: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Detail: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *StructuredError {
	apierr := NewStructured(http.StatusUnprocessableEntity)
	apierr.Add(name, "Parameter has invalid type, expected: "+dataType)
	return apierr
}

func NewMalformedBodyError() *StructuredError {
	apierr := NewStructured(http.StatusUnprocessableEntity)
	apierr.Add("body", "Malformed JSON body")
	return apierr
}
