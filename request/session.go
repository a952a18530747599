package request

import (
	"context"
)

// Session binds an Executor to an API root and a bearer token.
type Session struct {
	Executor *Executor
	BaseURI  string
	Token    string
}

// Execute performs a call against the session's API root.
func (s Session) Execute(ctx context.Context, method, path string, params Params) (*Envelope, error) {
	return s.Executor.Execute(ctx, method, s.BaseURI, path, s.Token, params)
}

// Do executes d now and decodes its result.
func Do[T any](ctx context.Context, s Session, d Descriptor[T]) (T, error) {
	var zero T
	if d.err != nil {
		return zero, d.err
	}
	env, err := s.Execute(ctx, d.method, d.path, d.params)
	if err != nil {
		return zero, err
	}
	return d.Decode(env.Body)
}
