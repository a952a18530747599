package errors

import (
	stderrors "errors"
)

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsTimeout checks if an error is a transport timeout.
func IsTimeout(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindTransport && e.Details["timeout"] == true
}

// IsAPI checks if an error is an API error.
func IsAPI(err error) bool { return KindOf(err) == KindAPI }

// IsProtocol checks if an error is a protocol error.
func IsProtocol(err error) bool { return KindOf(err) == KindProtocol }

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsUsage checks if an error is a usage error.
func IsUsage(err error) bool { return KindOf(err) == KindUsage }

// IsNotFound checks if an error is an API error with status 404.
func IsNotFound(err error) bool { return StatusCode(err) == 404 }

// IsAuth checks if an error is an API error with status 401 or 403.
func IsAuth(err error) bool {
	s := StatusCode(err)
	return s == 401 || s == 403
}

// IsRetryable checks if an error is flagged as transient.
func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.Retryable
}

// HasCode checks if an error carries the given server error code.
func HasCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if e, ok := As(err); ok {
		return e.StatusCode
	}
	return 0
}
