package validation

import (
	"encoding/json"
	"fmt"

	twerrors "github.com/kbukum/twistkit/errors"
)

// Shape turns a decoded payload (internal form) into a typed value,
// failing with a KindValidation error when the payload does not fit.
type Shape[T any] interface {
	Validate(raw any) (T, error)
}

// ShapeFunc adapts a function to the Shape interface.
type ShapeFunc[T any] func(raw any) (T, error)

// Validate calls f.
func (f ShapeFunc[T]) Validate(raw any) (T, error) {
	return f(raw)
}

// Struct returns a Shape that decodes raw into T through its json tags and
// then applies T's validate tags. T may be a struct, a pointer to one or a
// slice of either.
func Struct[T any]() Shape[T] {
	return ShapeFunc[T](func(raw any) (T, error) {
		var out T
		if raw == nil {
			return out, twerrors.Validation(fmt.Sprintf("expected %T, got empty body", out))
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return out, twerrors.Validation("re-encode payload").WithCause(err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return out, twerrors.Validation(fmt.Sprintf("payload does not match %T: %v", out, err)).WithCause(err)
		}
		if err := Validate(out); err != nil {
			return out, err
		}
		return out, nil
	})
}

// Any returns a Shape that accepts every payload unchanged.
func Any() Shape[any] {
	return ShapeFunc[any](func(raw any) (any, error) {
		return raw, nil
	})
}
