package apperror

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind is the machine-readable error code returned in API bodies.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindValidation      Kind = "VALIDATION_ERROR"
	KindDuplicate       Kind = "DUPLICATE"
	KindUpstream        Kind = "UPSTREAM_FAILURE"
)

type Error struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Msg: "no valid session"}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Validation carries the offending field so forms can render the
// message inline.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Msg: msg}
}

func Upstream(err error, msg string) *Error {
	return &Error{Kind: KindUpstream, Msg: fmt.Sprintf("%s: %v", msg, err)}
}

// KindOf unwraps err and reports its Kind. Anything that is not an
// *Error is treated as an upstream failure.
func KindOf(err error) Kind {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Kind
	}
	return KindUpstream
}

// FieldOf reports the field of a validation error, or empty.
func FieldOf(err error) string {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Field
	}
	return ""
}

// HTTPStatus maps an error kind to the status written at the API boundary.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// Body is the JSON error envelope. Upstream failures get a generic
// message so internal error text is never echoed to clients.
func Body(err error) map[string]string {
	kind := KindOf(err)
	body := map[string]string{"error": string(kind)}
	if kind == KindUpstream {
		body["message"] = "something went wrong, please retry"
		return body
	}
	if e, ok := errors.Cause(err).(*Error); ok {
		body["message"] = e.Msg
		if e.Field != "" {
			body["field"] = e.Field
		}
	}
	return body
}
