package batch

import (
	"sync"

	twerrors "github.com/kbukum/twistkit/errors"
	"github.com/kbukum/twistkit/logger"
	"github.com/kbukum/twistkit/request"
)

const (
	// DefaultPath is the batch endpoint, relative to the API root.
	DefaultPath = "v3/batch"
	// DefaultMaxItems is the largest batch accepted by default.
	DefaultMaxItems = 50
)

// Builder collects calls for one batch. It may be used from several
// goroutines, but executes only once.
type Builder struct {
	session  request.Session
	path     string
	maxItems int
	log      *logger.Logger

	mu       sync.Mutex
	entries  []entry
	executed bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithPath overrides the batch endpoint path.
func WithPath(path string) Option {
	return func(b *Builder) {
		if path != "" {
			b.path = path
		}
	}
}

// WithMaxItems sets the item limit. Zero or less disables it.
func WithMaxItems(n int) Option {
	return func(b *Builder) {
		b.maxItems = n
	}
}

// WithLogger sets the logger. Defaults to logger.Nop().
func WithLogger(l *logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l.WithComponent("batch")
		}
	}
}

// New creates an empty batch sent through s.
func New(s request.Session, opts ...Option) *Builder {
	b := &Builder{
		session:  s,
		path:     DefaultPath,
		maxItems: DefaultMaxItems,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add appends desc to the batch and returns its handle. Adding to a batch
// that has already executed returns a handle rejected with ErrBatchExecuted.
func Add[T any](b *Builder, desc request.Descriptor[T]) *Pending[T] {
	p := newPending(desc)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.executed {
		p.reject(twerrors.BatchExecuted())
		return p
	}
	b.entries = append(b.entries, p)
	return p
}

// Len returns the number of calls added so far.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// take marks the batch executed and hands its entries to the caller.
func (b *Builder) take() ([]entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.executed {
		return nil, twerrors.BatchExecuted()
	}
	b.executed = true
	entries := b.entries
	b.entries = nil
	return entries, nil
}
