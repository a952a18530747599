package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	twerrors "github.com/kbukum/twistkit/errors"
	"github.com/kbukum/twistkit/logger"
	"github.com/kbukum/twistkit/observability"
	"github.com/kbukum/twistkit/transport"
)

// Executor issues single API calls through a Transport.
// It is safe for concurrent use; calls do not interact.
type Executor struct {
	transport transport.Transport
	log       *logger.Logger
	tracer    trace.Tracer
	metrics   *observability.Metrics
	userAgent string
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger. Defaults to logger.Nop().
func WithLogger(l *logger.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.log = l.WithComponent("request")
		}
	}
}

// WithTracer sets the tracer. Defaults to the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Executor) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithMetrics sets the metric instruments. Nil disables recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithUserAgent sets the User-Agent header sent with every call.
func WithUserAgent(ua string) Option {
	return func(e *Executor) {
		e.userAgent = ua
	}
}

// NewExecutor creates an executor sending through t.
func NewExecutor(t transport.Transport, opts ...Option) *Executor {
	e := &Executor{
		transport: t,
		log:       logger.Nop(),
		tracer:    observability.Tracer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Logger returns the executor's logger.
func (e *Executor) Logger() *logger.Logger {
	return e.log
}

// Tracer returns the executor's tracer.
func (e *Executor) Tracer() trace.Tracer {
	return e.tracer
}

// Metrics returns the executor's metric instruments (may be nil).
func (e *Executor) Metrics() *observability.Metrics {
	return e.metrics
}

// Execute performs one call and returns its envelope.
//
// GET params become query parameters and POST params a JSON body; absent
// values are omitted in both cases. A non-2xx status fails with a KindAPI
// error, a transport failure with KindTransport, and a 2xx body that is not
// JSON with KindProtocol.
func (e *Executor) Execute(ctx context.Context, method, baseURI, path, token string, params Params) (*Envelope, error) {
	req, err := e.build(method, baseURI, path, token, params)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	ctx, span := e.tracer.Start(ctx, observability.SpanRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrMethod, req.Method),
			attribute.String(observability.AttrURL, req.URL),
			attribute.String(observability.AttrRequestID, requestID),
		),
	)
	log := e.log.WithFields(logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldMethod, req.Method,
		logger.FieldPath, path,
	))

	start := time.Now()
	env, err := e.send(ctx, req)
	elapsed := time.Since(start)

	status := 0
	if env != nil {
		status = env.StatusCode
	} else if apiErr, ok := twerrors.As(err); ok {
		status = apiErr.StatusCode
	}
	if status > 0 {
		span.SetAttributes(attribute.Int(observability.AttrStatusCode, status))
	}

	if err != nil {
		kind := twerrors.KindOf(err)
		observability.EndSpan(span, err, kind.String())
		e.metrics.RecordRequest(ctx, req.Method, status, "error", elapsed)
		log.Warn("call failed", logger.Merge(
			logger.ErrorFields("execute", err),
			logger.Fields(logger.FieldStatus, status, logger.FieldDuration, elapsed.Milliseconds()),
		))
		return nil, err
	}

	observability.EndSpan(span, nil, "")
	e.metrics.RecordRequest(ctx, req.Method, status, "ok", elapsed)
	log.Debug("call completed", logger.Fields(
		logger.FieldStatus, status,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return env, nil
}

func (e *Executor) send(ctx context.Context, req *transport.Request) (*Envelope, error) {
	resp, err := e.transport.Send(ctx, req)
	if err != nil {
		if _, ok := twerrors.As(err); ok {
			return nil, err
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return nil, twerrors.Timeout(err)
		}
		return nil, twerrors.Transport(err)
	}
	if resp == nil {
		return nil, twerrors.Protocol("transport returned no response", nil)
	}

	body, err := DecodeReply(resp.StatusCode, resp.Body)
	if err != nil {
		return nil, err
	}

	headers := resp.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	return &Envelope{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       body,
	}, nil
}

// build constructs the wire request for a call.
func (e *Executor) build(method, baseURI, path, token string, params Params) (*transport.Request, error) {
	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPost {
		return nil, twerrors.Usage(fmt.Sprintf("unsupported method %q", method))
	}
	if baseURI == "" {
		return nil, twerrors.Usage("base URI is required")
	}

	req := &transport.Request{
		URL:    JoinURL(baseURI, path),
		Method: method,
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
			"Accept":        "application/json",
		},
	}
	if e.userAgent != "" {
		req.Headers["User-Agent"] = e.userAgent
	}

	if err := params.Check(); err != nil {
		return nil, err
	}
	wire := params.Wire()
	switch method {
	case http.MethodGet:
		query, err := encodeQuery(wire)
		if err != nil {
			return nil, twerrors.Usage(err.Error()).WithCause(err)
		}
		if query != "" {
			req.URL += "?" + query
		}
	case http.MethodPost:
		req.Headers["Content-Type"] = "application/json"
		if wire != nil {
			data, err := json.Marshal(wire)
			if err != nil {
				return nil, twerrors.Usage(fmt.Sprintf("encode body: %v", err)).WithCause(err)
			}
			req.Body = data
		}
	}
	return req, nil
}

// JoinURL joins an API root and a relative path with exactly one slash.
func JoinURL(baseURI, path string) string {
	return strings.TrimRight(baseURI, "/") + "/" + strings.TrimLeft(path, "/")
}
