package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	twerrors "github.com/kbukum/twistkit/errors"
)

// HTTP is the default Transport built on net/http.
type HTTP struct {
	httpClient *http.Client
	config     Config
}

// Option configures an HTTP transport.
type Option func(*HTTP)

// WithHTTPClient replaces the underlying *http.Client. The configured
// timeout and TLS settings are not applied to a supplied client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		h.httpClient = c
	}
}

// NewHTTP creates the default transport.
func NewHTTP(cfg Config, opts ...Option) (*HTTP, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			base.TLSClientConfig = tlsCfg
		}
	}

	h := &HTTP{
		httpClient: &http.Client{
			Transport: base,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Send performs the exchange. Non-2xx statuses are returned, not raised.
func (h *HTTP) Send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := h.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
			return nil, twerrors.Timeout(err)
		}
		return nil, twerrors.Transport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, twerrors.Transport(fmt.Errorf("read response body: %w", err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    FlattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// CloseIdleConnections releases pooled connections.
func (h *HTTP) CloseIdleConnections() {
	h.httpClient.CloseIdleConnections()
}

func (h *HTTP) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, twerrors.Usage(fmt.Sprintf("create request: %v", err)).WithCause(err)
	}

	for k, v := range h.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	return httpReq, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
