package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error into one of the API's discriminated statuses.
type Kind int

const (
	// KindBadRequest marks missing or invalid caller input.
	KindBadRequest Kind = iota + 1
	// KindNotFound marks an absent key or an empty enumeration.
	KindNotFound
	// KindConflict marks a create on an id that already exists.
	KindConflict
	// KindForbidden marks a credential mismatch.
	KindForbidden
	// KindNeedsMigration marks a mutation attempt on a legacy document that
	// carries no credential hash, so authorship cannot be verified.
	KindNeedsMigration
	// KindBackend marks an underlying storage failure. The cause is logged
	// at the store boundary and never rendered to the caller.
	KindBackend
)

// Error is a classified error carrying a caller-safe message and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest returns a KindBadRequest error.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// NotFound returns a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict returns a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Forbidden returns a KindForbidden error.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NeedsMigration returns a KindNeedsMigration error.
func NeedsMigration(msg string) *Error {
	return &Error{Kind: KindNeedsMigration, Message: msg}
}

// Backend wraps a storage failure with a caller-safe message.
func Backend(msg string, err error) *Error {
	return &Error{Kind: KindBackend, Message: msg, Err: err}
}

// KindOf extracts the Kind of err; unclassified errors count as KindBackend.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindBackend
}

// StatusCode maps an error to the HTTP status the transport renders.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNeedsMigration:
		return fiber.StatusPreconditionFailed
	default:
		return fiber.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to render to the caller. Backend
// causes are stripped; everything else passes through as-is.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
