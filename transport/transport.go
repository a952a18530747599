package transport

import (
	"context"
	"net/http"
)

// Request is one outbound exchange.
type Request struct {
	// URL is the absolute request URL including the query string.
	URL string
	// Method is the HTTP method.
	Method string
	// Headers are sent as-is.
	Headers map[string]string
	// Body is the request payload. Nil sends no body.
	Body []byte
}

// Response is the raw result of an exchange.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, one value per name.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport sends a single HTTP exchange.
//
// Send returns an error only when the exchange could not be completed.
// Every status code, including 4xx and 5xx, is a successful Send.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts a plain function to the Transport interface.
type Func func(ctx context.Context, req *Request) (*Response, error)

// Send calls f.
func (f Func) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// FlattenHeaders converts multi-value headers to single-value.
func FlattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
