// Package errs defines the domain error taxonomy shared by all services.
// Services raise DomainError values; the HTTP boundary maps them onto
// status codes and the error envelope.
package errs

import (
	"errors"
	"net/http"
)

// DomainError is a business rule violation with a stable code and the
// HTTP status it maps to.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string { return e.Message }

// NotFound reports a missing entity.
func NotFound(message string) *DomainError {
	return &DomainError{Code: "NOT_FOUND", Message: message, Status: http.StatusNotFound}
}

// AccessDenied reports that the authenticated subject may not perform
// the action. Distinct from NotFound so ownership checks do not mask
// the entity's existence semantics.
func AccessDenied(message string) *DomainError {
	return &DomainError{Code: "ACCESS_DENIED", Message: message, Status: http.StatusForbidden}
}

// NotAllowed reports a failed transfer precondition.
func NotAllowed(message string) *DomainError {
	return &DomainError{Code: "NOT_ALLOWED", Message: message, Status: http.StatusForbidden}
}

// AlreadyTaken reports a uniqueness collision.
func AlreadyTaken(message string) *DomainError {
	return &DomainError{Code: "ALREADY_TAKEN", Message: message, Status: http.StatusConflict}
}

// InvalidArgument reports malformed input.
func InvalidArgument(message string) *DomainError {
	return &DomainError{Code: "INVALID_ARGUMENT", Message: message, Status: http.StatusBadRequest}
}

// InvalidState reports an operation that is not legal in the entity's
// current state, e.g. unblocking an expired card.
func InvalidState(message string) *DomainError {
	return &DomainError{Code: "INVALID_STATE", Message: message, Status: http.StatusBadRequest}
}

// Unauthorized reports missing or bad credentials.
func Unauthorized(message string) *DomainError {
	return &DomainError{Code: "UNAUTHORIZED", Message: message, Status: http.StatusUnauthorized}
}

// Internal reports an unrecoverable failure.
func Internal(message string) *DomainError {
	return &DomainError{Code: "INTERNAL", Message: message, Status: http.StatusInternalServerError}
}

// StatusOf extracts the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Status
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the user facing message for err. Non-domain errors
// are not leaked to clients.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "Internal server error"
}
