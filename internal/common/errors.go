package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthorized       = errors.New("Not authorized to access this route")
	ErrInvalidCredentials = errors.New("Invalid Credentials")
	ErrForbidden          = errors.New("forbidden access")
	ErrBadRequest         = errors.New("bad request")
	ErrValidation         = errors.New("validation failed")
	ErrInternalServer     = errors.New("internal server error")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}

	// Unique-index violations surface as a client error, not a 500.
	if mongo.IsDuplicateKeyError(err) {
		return http.StatusBadRequest
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// ErrorMessage produces the client-facing message for an error. Schema
// violations get their field messages joined; duplicate keys get a fixed
// message; anything unrecognized collapses to a generic 500 message so
// driver internals never leak to callers.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if mongo.IsDuplicateKeyError(err) {
		return "Duplicate field value entered"
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		messages := make([]string, 0, len(verr))
		for _, fe := range verr {
			messages = append(messages, validationMessage(fe))
		}
		return strings.Join(messages, ", ")
	}

	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrValidation):
		return err.Error()
	}

	return "Server Error"
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please add a %s", field)
	case "min":
		return fmt.Sprintf("%s cannot be less than %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", field, fe.Param())
	case "email":
		return "Please add a valid email address"
	case "url":
		return "Please enter a valid web address"
	case "oneof", "career":
		return fmt.Sprintf("%s must be a valid value", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot be more than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
