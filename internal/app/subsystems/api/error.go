package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/upstream"
)

type Error struct {
	// Code is the http status code of the response
	Code int `json:"code,omitempty"`

	// Message is the error message
	Message string `json:"message,omitempty"`

	// Details is a list of details about the error
	Details []*ErrorDetails `json:"details,omitempty"`
}

type ErrorDetails struct {
	// Type is the specific error type
	Type string `json:"@type,omitempty"`

	// Message is a human readable description of the error
	Message string `json:"message,omitempty"`

	// Domain is the domain of the error
	Domain string `json:"domain,omitempty"`

	// Metadata is additional information about the error
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// StoreError maps a correlation store error to a response, anything
// other than a known sentinel is an internal error.
func StoreError(err error) *Error {
	var code int
	var typ string

	switch {
	case errors.Is(err, store.ErrNotFound):
		code, typ = http.StatusNotFound, "NotFound"
	case errors.Is(err, store.ErrAlreadyCompleted):
		code, typ = http.StatusConflict, "AlreadyCompleted"
	case errors.Is(err, store.ErrAlreadyExists):
		code, typ = http.StatusConflict, "AlreadyExists"
	case errors.Is(err, store.ErrInvalidStatus):
		code, typ = http.StatusUnprocessableEntity, "InvalidStatus"
	default:
		return ServerError(err)
	}

	return &Error{
		Code:    code,
		Message: http.StatusText(code),
		Details: []*ErrorDetails{{
			Type:    typ,
			Message: err.Error(),
			Domain:  "request",
		}},
	}
}

// UpstreamError forwards the upstream message under the status the route
// reports upstream failures with.
func UpstreamError(code int, err error) *Error {
	var upstreamErr *upstream.Error
	if !errors.As(err, &upstreamErr) {
		return ServerError(err)
	}

	metadata := map[string]string{
		"operation": upstreamErr.Operation,
	}
	if upstreamErr.StatusCode != 0 {
		metadata["status"] = fmt.Sprint(upstreamErr.StatusCode)
	}

	return &Error{
		Code:    code,
		Message: upstreamErr.Error(),
		Details: []*ErrorDetails{{
			Type:     "UpstreamError",
			Message:  upstreamErr.Message,
			Domain:   "upstream",
			Metadata: metadata,
		}},
	}
}

func ServerError(err error) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
		Details: []*ErrorDetails{{
			Type:    "ServerError",
			Message: err.Error(),
			Domain:  "server",
		}},
	}
}

func RequestValidationError(err error) *Error {
	code := http.StatusUnprocessableEntity
	details := []*ErrorDetails{}

	for _, err := range parseBindingError(err) {
		details = append(details, &ErrorDetails{
			Type:    "FieldValidationError",
			Message: err,
			Domain:  "request",
		})
	}

	return &Error{
		Code:    code,
		Message: http.StatusText(code),
		Details: details,
	}
}

// Helper functions

func parseBindingError(errs ...error) []string {
	var out []string
	for _, err := range errs {
		switch typedErr := err.(type) {
		case validator.ValidationErrors:
			for _, e := range typedErr {
				out = append(out, parseFieldError(e))
			}
		default:
			out = append(out, err.Error())
		}
	}
	return out
}

func parseFieldError(e validator.FieldError) string {
	field := toSnakeCase(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The field %s is required.", field)
	case "gt":
		return fmt.Sprintf("The field %s must be greater than %s.", field, e.Param())
	case "gte":
		return fmt.Sprintf("The field %s must be greater than or equal to %s.", field, e.Param())
	case "oneof", "oneofci", "oneofcaseinsensitive":
		params := strings.Split(e.Param(), " ")
		params[len(params)-1] = "or " + params[len(params)-1]
		return fmt.Sprintf("The field %s must be one of %s.", field, strings.Join(params, ", "))
	default:
		return e.Error()
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
