package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Kind buckets a failed operation into one of the actionable categories the
// client reacts to.
type Kind int

const (
	// KindGeneric is anything not covered below; surfaced with the server
	// message or a fallback string.
	KindGeneric Kind = iota
	// KindAuthRequired means no token was present; checked before any
	// network call.
	KindAuthRequired
	// KindValidation means a required field (id/name/username/role) was
	// absent; checked before any network call.
	KindValidation
	// KindAuthFailure is a 401/403 from the server; triggers logout.
	KindAuthFailure
	// KindNotFound is a 404.
	KindNotFound
	// KindRateLimited is a 429; transient, subject to the retry policy.
	KindRateLimited
	// KindCancelled is a request superseded or aborted; never surfaced.
	KindCancelled
)

// ErrAuthRequired is returned when an operation runs without a token.
var ErrAuthRequired = &ErrorWithStatusCode{Message: "authentication required", StatusCode: http.StatusUnauthorized}

// ValidationError marks a client-side required-field failure.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// MissingField builds a ValidationError for a named required field.
func MissingField(field string) error {
	return &ValidationError{Field: field}
}

// NotFound builds a 404 error with a per-kind message ("gate not found").
func NotFound(what string) error {
	return &ErrorWithStatusCode{Message: what + " not found", StatusCode: http.StatusNotFound}
}

// RateLimitExceeded is surfaced after the retry ceiling is exhausted.
func RateLimitExceeded() error {
	return &ErrorWithStatusCode{Message: "rate limit exceeded, please try again later", StatusCode: http.StatusTooManyRequests}
}

// Classify maps an error to its Kind. Cancellation is detected via the
// context sentinels so an aborted in-flight request stays silent.
func Classify(err error) Kind {
	if err == nil {
		return KindGeneric
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	if errors.Is(err, ErrAuthRequired) {
		return KindAuthRequired
	}
	var sc *ErrorWithStatusCode
	if errors.As(err, &sc) {
		switch sc.StatusCode {
		case http.StatusTooManyRequests:
			return KindRateLimited
		case http.StatusUnauthorized, http.StatusForbidden:
			return KindAuthFailure
		case http.StatusNotFound:
			return KindNotFound
		}
	}
	return KindGeneric
}
