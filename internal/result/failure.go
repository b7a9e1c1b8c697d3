package result

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote call.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyBody
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindTooManyRequests
	KindServerError
	KindNetworkError
	KindConnectionError
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindEmptyBody:       "empty_body",
	KindUnauthorized:    "unauthorized",
	KindForbidden:       "forbidden",
	KindNotFound:        "not_found",
	KindValidation:      "validation",
	KindTooManyRequests: "too_many_requests",
	KindServerError:     "server_error",
	KindNetworkError:    "network_error",
	KindConnectionError: "connection_error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Failure is the single error type remote calls surface to callers.
// Code is the HTTP status when one was received, 0 otherwise.
type Failure struct {
	Kind    Kind
	Code    int
	Details string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("[%s] %s", f.Kind, f.Message())
}

// Message is the human readable text shown to users.
func (f *Failure) Message() string {
	switch f.Kind {
	case KindEmptyBody:
		return "Response body is empty"
	case KindUnauthorized:
		return "Authentication required"
	case KindForbidden:
		return "Access forbidden"
	case KindNotFound:
		return "Resource not found"
	case KindValidation:
		return "Validation failed: " + orDefault(f.Details, "Invalid input")
	case KindTooManyRequests:
		return "Too many requests. Please try again later"
	case KindServerError:
		return "Server error: " + orDefault(f.Details, "Internal server error")
	case KindNetworkError:
		return fmt.Sprintf("Network error (%d): %s", f.Code, orDefault(f.Details, "Unknown error"))
	case KindConnectionError:
		return "Connection failed: " + orDefault(f.Details, "Check your internet connection")
	default:
		return orDefault(f.Details, "Unknown error")
	}
}

// Is matches another *Failure of the same kind, so errors.Is(err,
// &Failure{Kind: KindNotFound}) works regardless of details.
func (f *Failure) Is(target error) bool {
	var other *Failure
	if errors.As(target, &other) {
		return f.Kind == other.Kind
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Constructors, one per kind.

func EmptyBody() *Failure       { return &Failure{Kind: KindEmptyBody} }
func Unauthorized() *Failure    { return &Failure{Kind: KindUnauthorized, Code: 401} }
func Forbidden() *Failure       { return &Failure{Kind: KindForbidden, Code: 403} }
func NotFound() *Failure        { return &Failure{Kind: KindNotFound, Code: 404} }
func TooManyRequests() *Failure { return &Failure{Kind: KindTooManyRequests, Code: 429} }

func Validation(details string) *Failure {
	return &Failure{Kind: KindValidation, Code: 422, Details: details}
}

func ServerError(code int, details string) *Failure {
	return &Failure{Kind: KindServerError, Code: code, Details: details}
}

func NetworkError(code int, details string) *Failure {
	return &Failure{Kind: KindNetworkError, Code: code, Details: details}
}

func ConnectionError(details string) *Failure {
	return &Failure{Kind: KindConnectionError, Details: details}
}

func Unknown(details string) *Failure {
	return &Failure{Kind: KindUnknown, Details: details}
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf returns the failure kind of err, or KindUnknown.
func KindOf(err error) Kind {
	if f, ok := AsFailure(err); ok {
		return f.Kind
	}
	return KindUnknown
}
