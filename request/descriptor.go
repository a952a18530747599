package request

import (
	"net/http"
	"reflect"

	"github.com/kbukum/twistkit/naming"
	"github.com/kbukum/twistkit/validation"
)

// Descriptor is an unexecuted description of one logical call. It is
// immutable once built; Params returns a copy.
type Descriptor[T any] struct {
	method string
	path   string
	params Params
	shape  validation.Shape[T]
	err    error
}

// Get describes a GET call.
func Get[T any](path string, params Params, shape validation.Shape[T]) Descriptor[T] {
	return New(http.MethodGet, path, params, shape)
}

// Post describes a POST call.
func Post[T any](path string, params Params, shape validation.Shape[T]) Descriptor[T] {
	return New(http.MethodPost, path, params, shape)
}

// New describes a call. A nil shape accepts any payload that already has
// type T and otherwise decodes with validation.Struct[T]. Params that fail
// Check yield a failed descriptor.
func New[T any](method, path string, params Params, shape validation.Shape[T]) Descriptor[T] {
	if err := params.Check(); err != nil {
		return Failed[T](err)
	}
	return Descriptor[T]{
		method: method,
		path:   path,
		params: params.Clone(),
		shape:  shape,
	}
}

// Failed returns a descriptor that fails with err whenever it is run.
// Resource clients use it to defer argument errors to the call site.
func Failed[T any](err error) Descriptor[T] {
	return Descriptor[T]{err: err}
}

// Method returns the HTTP method.
func (d Descriptor[T]) Method() string { return d.method }

// Path returns the path relative to the API root.
func (d Descriptor[T]) Path() string { return d.path }

// Params returns a copy of the call parameters.
func (d Descriptor[T]) Params() Params { return d.params.Clone() }

// Err returns the deferred argument error, if any.
func (d Descriptor[T]) Err() error { return d.err }

// Decode translates a wire body to internal form and applies the shape.
// Without a shape an empty body decodes to nil only when T is an interface
// type; concrete types report a validation error.
func (d Descriptor[T]) Decode(wireBody any) (T, error) {
	internal := naming.FromWire(wireBody)
	if d.shape != nil {
		return d.shape.Validate(internal)
	}
	if internal == nil && reflect.TypeOf((*T)(nil)).Elem().Kind() == reflect.Interface {
		var zero T
		return zero, nil
	}
	if v, ok := internal.(T); ok {
		return v, nil
	}
	return validation.Struct[T]().Validate(internal)
}
