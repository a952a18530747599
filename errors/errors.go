package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Error is the unified SDK error type.
type Error struct {
	// Kind classifies the error.
	Kind Kind `json:"kind"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// StatusCode is the HTTP status (0 when no exchange completed).
	StatusCode int `json:"status_code,omitempty"`
	// Code is the machine-readable error code sent by the server, if any.
	Code string `json:"code,omitempty"`
	// Retryable indicates the failure is likely transient.
	Retryable bool `json:"retryable"`
	// Body is the decoded error payload in internal form (may be nil).
	Body any `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("twist: ")
	b.WriteString(strings.ToLower(string(e.Kind)))
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Code != "" {
		b.WriteString(" ")
		b.WriteString(e.Code)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil && e.Cause.Error() != e.Message {
		fmt.Fprintf(&b, " (cause: %v)", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same kind and a non-empty
// matching code, so fresh errors match their package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Kind == e.Kind && t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Transport creates an error for an exchange the transport could not complete.
func Transport(cause error) *Error {
	return &Error{
		Kind:      KindTransport,
		Message:   cause.Error(),
		Retryable: true,
		Cause:     cause,
	}
}

// Timeout creates a transport error for an exchange that ran out of time.
func Timeout(cause error) *Error {
	return Transport(cause).WithDetail("timeout", true)
}

// API creates an error for a completed exchange with a non-2xx status.
// body is the decoded payload in internal form; when it carries errorCode /
// errorString they populate Code and Message.
func API(statusCode int, body any) *Error {
	e := &Error{
		Kind:       KindAPI,
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Retryable:  IsRetryableStatus(statusCode),
		Body:       body,
	}
	if e.Message == "" {
		e.Message = "HTTP " + strconv.Itoa(statusCode)
	}
	if payload, ok := body.(map[string]any); ok {
		if code := stringify(payload["errorCode"]); code != "" {
			e.Code = code
		}
		if msg := stringify(payload["errorString"]); msg != "" {
			e.Message = msg
		}
	}
	return e
}

// Protocol creates an error for a reply that violates the wire protocol.
func Protocol(message string, cause error) *Error {
	return &Error{
		Kind:    KindProtocol,
		Message: message,
		Cause:   cause,
	}
}

// Validation creates an error for a payload that failed its shape check.
func Validation(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
	}
}

// Usage creates an error for incorrect use of the SDK.
func Usage(message string) *Error {
	return &Error{
		Kind:    KindUsage,
		Message: message,
	}
}

// Batch lifecycle codes.
const (
	CodeBatchExecuted = "BATCH_EXECUTED"
	CodeNotExecuted   = "BATCH_NOT_EXECUTED"
)

// Batch lifecycle sentinels, for use with errors.Is only. Functions return
// fresh values from BatchExecuted and NotExecuted so callers may decorate
// them.
var (
	// ErrBatchExecuted matches errors for a batch executed twice or a call
	// added after execution.
	ErrBatchExecuted = BatchExecuted()
	// ErrNotExecuted matches errors for a pending result read before the
	// batch that owns it has been executed.
	ErrNotExecuted = NotExecuted()
)

// BatchExecuted returns a new usage error matching ErrBatchExecuted.
func BatchExecuted() *Error {
	e := Usage("batch already executed")
	e.Code = CodeBatchExecuted
	return e
}

// NotExecuted returns a new usage error matching ErrNotExecuted.
func NotExecuted() *Error {
	e := Usage("batch not executed yet")
	e.Code = CodeNotExecuted
	return e
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
