package errors

import "net/http"

// Kind classifies an SDK error.
type Kind string

const (
	// KindTransport indicates the transport could not complete the exchange.
	KindTransport Kind = "TRANSPORT"
	// KindAPI indicates the server answered with a non-success status.
	KindAPI Kind = "API"
	// KindProtocol indicates a reply that violates the wire protocol.
	KindProtocol Kind = "PROTOCOL"
	// KindValidation indicates a decoded payload failed its shape check.
	KindValidation Kind = "VALIDATION"
	// KindUsage indicates the SDK was used incorrectly.
	KindUsage Kind = "USAGE"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// IsRetryableStatus reports whether a status code usually clears on its own.
// The SDK never retries; the flag is informational for callers.
func IsRetryableStatus(statusCode int) bool {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return true
	case statusCode == http.StatusRequestTimeout:
		return true
	case statusCode >= 500:
		return statusCode != http.StatusNotImplemented
	default:
		return false
	}
}
