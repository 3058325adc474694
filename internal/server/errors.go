package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/hs-advisor/internal/dispatch"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBadRequest indicates a request body that could not be decoded
type ErrBadRequest struct {
	Cause error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		badRequest    *ErrBadRequest
		fieldErrs     validator.ValidationErrors
		unknownIntent *dispatch.UnknownIntentError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &badRequest), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.Is(err, dispatch.ErrEmptyQuestion), errors.As(err, &unknownIntent):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499 // client closed request
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage flattens validator errors into ErrValidation form
func validationMessage(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	msg := "failed on '" + fe.Tag() + "'"
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min", "max", "gte", "lte":
		msg = "must satisfy " + fe.Tag() + "=" + fe.Param()
	case "numeric":
		msg = "must be numeric"
	}
	return &ErrValidation{Field: fe.Field(), Message: msg}
}
