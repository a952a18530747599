package batch

import (
	"sync"

	twerrors "github.com/kbukum/twistkit/errors"
	"github.com/kbukum/twistkit/request"
)

// Pending is the handle for one call in a batch. It settles exactly once,
// when the batch executes.
type Pending[T any] struct {
	desc request.Descriptor[T]

	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newPending[T any](desc request.Descriptor[T]) *Pending[T] {
	return &Pending[T]{desc: desc, done: make(chan struct{})}
}

// Result returns the decoded value or the item's error. Before the batch
// executes it returns ErrNotExecuted.
func (p *Pending[T]) Result() (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	default:
		var zero T
		return zero, twerrors.NotExecuted()
	}
}

// Done is closed once the handle has settled.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

func (p *Pending[T]) call() (string, string, request.Params, error) {
	d := p.desc
	return d.Method(), d.Path(), d.Params(), d.Err()
}

func (p *Pending[T]) resolve(body any) (any, error) {
	v, err := p.desc.Decode(body)
	if err != nil {
		p.reject(err)
		return nil, err
	}
	p.once.Do(func() {
		p.value = v
		close(p.done)
	})
	return v, nil
}

func (p *Pending[T]) reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// entry is the type-erased view of a Pending the builder works with.
type entry interface {
	call() (method, path string, params request.Params, err error)
	resolve(body any) (any, error)
	reject(err error)
}
