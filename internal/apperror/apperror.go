// Package apperror defines the error taxonomy surfaced to callers of the
// auth core and its mapping onto HTTP statuses and gRPC codes.
package apperror

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
)

// Kind classifies an error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindUnavailable
	KindInvalidOperation
)

var kindNames = map[Kind]string{
	KindInternal:         "internal",
	KindValidation:       "validation",
	KindAuthentication:   "authentication",
	KindAuthorization:    "authorization",
	KindNotFound:         "not_found",
	KindConflict:         "conflict",
	KindUnavailable:      "unavailable",
	KindInvalidOperation: "invalid_operation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Reason refines an authentication failure so that token consumers can
// decide whether a refresh is worth attempting.
type Reason string

const (
	ReasonTokenMissing   Reason = "token_missing"
	ReasonTokenMalformed Reason = "token_malformed"
	ReasonTokenExpired   Reason = "token_expired"
	ReasonTokenInvalid   Reason = "token_invalid"
)

// Error is a classified error. Message is safe to show to callers; Err is
// kept for logs only.
type Error struct {
	Kind    Kind
	Reason  Reason
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

// HTTPStatus returns the status code for the error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInvalidOperation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode returns the gRPC status code for the error kind.
func (e *Error) GRPCCode() codes.Code {
	switch e.Kind {
	case KindValidation:
		return codes.InvalidArgument
	case KindInvalidOperation:
		return codes.FailedPrecondition
	case KindAuthentication:
		return codes.Unauthenticated
	case KindAuthorization:
		return codes.PermissionDenied
	case KindNotFound:
		return codes.NotFound
	case KindConflict:
		return codes.AlreadyExists
	case KindUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// Retryable reports whether the caller may retry with backoff.
func (e *Error) Retryable() bool {
	return e.Kind == KindUnavailable
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// AuthenticationReason is an authentication failure with a typed reason.
func AuthenticationReason(reason Reason, message string) *Error {
	return &Error{Kind: KindAuthentication, Reason: reason, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unavailable(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

func InvalidOperation(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// As returns the classified error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// ReasonOf returns the authentication reason of err, if any.
func ReasonOf(err error) Reason {
	if appErr, ok := As(err); ok {
		return appErr.Reason
	}
	return ""
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
