package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAPI_DecodesWirePayload(t *testing.T) {
	body := map[string]any{"errorCode": "INVALID_TOKEN", "errorString": "Invalid token"}
	err := API(http.StatusUnauthorized, body)

	if err.Kind != KindAPI {
		t.Errorf("expected kind API, got %s", err.Kind)
	}
	if err.Code != "INVALID_TOKEN" {
		t.Errorf("expected code INVALID_TOKEN, got %q", err.Code)
	}
	if err.Message != "Invalid token" {
		t.Errorf("expected message 'Invalid token', got %q", err.Message)
	}
	if err.StatusCode != 401 {
		t.Errorf("expected status 401, got %d", err.StatusCode)
	}
	if err.Retryable {
		t.Error("401 should not be retryable")
	}
	if !strings.Contains(err.Error(), "INVALID_TOKEN") {
		t.Errorf("expected error string to contain code, got %q", err.Error())
	}
}

func TestAPI_NumericCode(t *testing.T) {
	err := API(http.StatusNotFound, map[string]any{"errorCode": 17.0, "errorString": "Thread not found"})
	if err.Code != "17" {
		t.Errorf("expected code 17, got %q", err.Code)
	}
}

func TestAPI_NoPayload(t *testing.T) {
	err := API(http.StatusServiceUnavailable, nil)
	if err.Message != "Service Unavailable" {
		t.Errorf("expected status text message, got %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("expected empty code, got %q", err.Code)
	}
	if !err.Retryable {
		t.Error("503 should be retryable")
	}
}

func TestAPI_UnknownStatus(t *testing.T) {
	err := API(599, "oops")
	if err.Message != "HTTP 599" {
		t.Errorf("expected fallback message, got %q", err.Message)
	}
	if err.Body != "oops" {
		t.Errorf("expected raw body to be kept, got %#v", err.Body)
	}
}

func TestTransport_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Transport(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !IsTransport(err) {
		t.Error("expected IsTransport")
	}
	if IsTimeout(err) {
		t.Error("connection refused is not a timeout")
	}
	if !IsRetryable(err) {
		t.Error("transport errors are flagged retryable")
	}
}

func TestTimeout(t *testing.T) {
	err := Timeout(fmt.Errorf("context deadline exceeded"))
	if !IsTimeout(err) || !IsTransport(err) {
		t.Errorf("expected timeout transport error, got %v", err)
	}
}

func TestPredicates_ThroughWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"api", API(404, nil), IsAPI},
		{"not found", API(404, nil), IsNotFound},
		{"auth", API(403, nil), IsAuth},
		{"protocol", Protocol("bad reply", nil), IsProtocol},
		{"validation", Validation("id: is required"), IsValidation},
		{"usage", ErrBatchExecuted, IsUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("calling: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("predicate failed for %v", wrapped)
			}
		})
	}
}

func TestPredicates_ForeignError(t *testing.T) {
	err := fmt.Errorf("plain")
	if IsAPI(err) || IsTransport(err) || HasCode(err, "") || StatusCode(err) != 0 {
		t.Error("predicates must be false for non-SDK errors")
	}
	if KindOf(nil) != "" {
		t.Error("expected empty kind for nil")
	}
}

func TestError_String(t *testing.T) {
	err := Protocol("batch reply has 2 items, expected 3", nil)
	want := "twist: protocol: batch reply has 2 items, expected 3"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := map[int]bool{
		200: false,
		400: false,
		408: true,
		429: true,
		500: true,
		501: false,
		503: true,
	}
	for status, want := range tests {
		if got := IsRetryableStatus(status); got != want {
			t.Errorf("IsRetryableStatus(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestBatchSentinels_FreshValues(t *testing.T) {
	err := BatchExecuted().WithDetail("batch_id", "b1")
	if !stderrors.Is(fmt.Errorf("add: %w", err), ErrBatchExecuted) {
		t.Errorf("expected %v to match ErrBatchExecuted", err)
	}
	if stderrors.Is(err, ErrNotExecuted) {
		t.Error("batch executed must not match ErrNotExecuted")
	}
	if ErrBatchExecuted.Details != nil {
		t.Errorf("decorating a returned error leaked into the sentinel: %v", ErrBatchExecuted.Details)
	}
	if stderrors.Is(Usage("batch already executed"), ErrBatchExecuted) {
		t.Error("a usage error without the code must not match")
	}
	if !IsUsage(NotExecuted()) {
		t.Error("NotExecuted should be a usage error")
	}
}
