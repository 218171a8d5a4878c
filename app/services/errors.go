package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an expected failure.
type Kind string

const (
	KindInvalidToken       Kind = "invalid_token"
	KindUserNotFound       Kind = "user_not_found"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindDuplicateUsername  Kind = "duplicate_username"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindValidation         Kind = "validation"
	KindConflict           Kind = "conflict"
)

// Error is the typed error every service returns for expected failures.
// Anything else a service returns is an infrastructure error.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for KindValidation.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches on Kind so callers can write errors.Is(err, services.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidToken       = &Error{Kind: KindInvalidToken, Message: "Invalid token"}
	ErrUserNotFound       = &Error{Kind: KindUserNotFound, Message: "User not found"}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Message: "User with this email already exists"}
	ErrDuplicateUsername  = &Error{Kind: KindDuplicateUsername, Message: "User with this username already exists"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid username or password!"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "Forbidden"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "Not found"}
	ErrValidation         = &Error{Kind: KindValidation, Message: "Validation failed"}
	ErrConflict           = &Error{Kind: KindConflict, Message: "Conflict"}
)

func forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func invalid(fields map[string]string) error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// Status maps err to an HTTP status. Untyped errors are 500.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}

	switch e.Kind {
	case KindInvalidToken, KindUserNotFound:
		return http.StatusUnauthorized
	case KindDuplicateEmail, KindDuplicateUsername, KindInvalidCredentials:
		return http.StatusBadRequest
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
