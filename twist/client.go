package twist

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/twistkit/batch"
	"github.com/kbukum/twistkit/config"
	"github.com/kbukum/twistkit/logger"
	"github.com/kbukum/twistkit/observability"
	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/transport"
	"github.com/kbukum/twistkit/validation"
)

// API version prefixes.
const (
	v3 = "v3/"
	v4 = "v4/"
)

// Client is a Twist API client. It is safe for concurrent use.
type Client struct {
	session  request.Session
	log      *logger.Logger
	maxItems int

	Workspaces           *Workspaces
	Users                *Users
	Channels             *Channels
	Threads              *Threads
	Comments             *Comments
	Conversations        *Conversations
	ConversationMessages *ConversationMessages
	Reactions            *Reactions
	Search               *Search
	Inbox                *Inbox
}

type options struct {
	transport transport.Transport
	log       *logger.Logger
	tracer    trace.Tracer
	metrics   *observability.Metrics
}

// Option configures a Client.
type Option func(*options)

// WithTransport replaces the default HTTP transport, e.g. with a
// transport.Func supplied by a host runtime.
func WithTransport(t transport.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sets the logger. By default the client does not log.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracer sets the tracer for call and batch spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates a client from cfg. Defaults are applied to a copy of cfg
// before it is validated.
func New(cfg config.Client, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		t, err := transport.NewHTTP(cfg.Transport())
		if err != nil {
			return nil, err
		}
		o.transport = t
	}

	exec := request.NewExecutor(o.transport,
		request.WithLogger(o.log),
		request.WithTracer(o.tracer),
		request.WithMetrics(o.metrics),
		request.WithUserAgent(cfg.UserAgent),
	)
	s := request.Session{Executor: exec, BaseURI: cfg.BaseURL, Token: cfg.Token}

	o.log.WithComponent("twist").Debug("client created", logger.Fields("base_url", cfg.BaseURL))
	return &Client{
		session:              s,
		log:                  o.log,
		maxItems:             cfg.BatchMaxItems,
		Workspaces:           &Workspaces{s: s},
		Users:                &Users{s: s},
		Channels:             &Channels{s: s},
		Threads:              &Threads{s: s},
		Comments:             &Comments{s: s},
		Conversations:        &Conversations{s: s},
		ConversationMessages: &ConversationMessages{s: s},
		Reactions:            &Reactions{s: s},
		Search:               &Search{s: s},
		Inbox:                &Inbox{s: s},
	}, nil
}

// Session returns the client's session, for calls without a resource
// helper.
func (c *Client) Session() request.Session {
	return c.session
}

// NewBatch starts a batch sent with this client's credentials. opts are
// applied after the client's own defaults.
func (c *Client) NewBatch(opts ...batch.Option) *batch.Builder {
	base := []batch.Option{batch.WithLogger(c.log)}
	if c.maxItems > 0 {
		base = append(base, batch.WithMaxItems(c.maxItems))
	}
	return batch.New(c.session, append(base, opts...)...)
}

// describe builds a descriptor decoded with T's json and validate tags, or
// a failed one when v holds argument errors.
func describe[T any](method, path string, params request.Params, v *validation.Validator) request.Descriptor[T] {
	if v != nil {
		if err := v.Validate(); err != nil {
			return request.Failed[T](err)
		}
	}
	return request.New(method, path, params, validation.Struct[T]())
}

// describeAck builds a descriptor for calls whose reply carries nothing of
// interest.
func describeAck(path string, params request.Params, v *validation.Validator) request.Descriptor[any] {
	if v != nil {
		if err := v.Validate(); err != nil {
			return request.Failed[any](err)
		}
	}
	return request.Post[any](path, params, nil)
}

func ack(ctx context.Context, s request.Session, d request.Descriptor[any]) error {
	_, err := request.Do(ctx, s, d)
	return err
}

func get[T any](path string, params request.Params, v *validation.Validator) request.Descriptor[T] {
	return describe[T](http.MethodGet, path, params, v)
}

func post[T any](path string, params request.Params, v *validation.Validator) request.Descriptor[T] {
	return describe[T](http.MethodPost, path, params, v)
}

// Ptr returns a pointer to v, for the optional fields of option structs.
func Ptr[T any](v T) *T {
	return &v
}
