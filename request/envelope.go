package request

import (
	"bytes"
	"encoding/json"
	"fmt"

	twerrors "github.com/kbukum/twistkit/errors"
	"github.com/kbukum/twistkit/naming"
)

// Envelope is the normalized reply of one physical call.
type Envelope struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the parsed JSON body in wire form, or nil when the reply had
	// no content.
	Body any
}

// IsSuccess returns true if the status code is 2xx.
func (e *Envelope) IsSuccess() bool {
	return isSuccess(e.StatusCode)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// decodeBody parses raw as JSON. Empty or whitespace-only input yields nil.
func decodeBody(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeReply parses one reply body into wire form. A non-2xx status fails
// with a KindAPI error carrying the decoded error body, and a 2xx body that
// is not JSON with a KindProtocol error.
func DecodeReply(status int, raw []byte) (any, error) {
	if !isSuccess(status) {
		return nil, apiError(status, raw)
	}
	body, err := decodeBody(raw)
	if err != nil {
		return nil, twerrors.Protocol(fmt.Sprintf("decode response body: %v", err), err).
			WithDetail("status", status)
	}
	return body, nil
}

// apiError builds the KindAPI error for a non-2xx reply. A body that is not
// JSON is kept as text.
func apiError(status int, raw []byte) *twerrors.Error {
	body, err := decodeBody(raw)
	if err != nil {
		return twerrors.API(status, string(raw))
	}
	return twerrors.API(status, naming.FromWire(body))
}
