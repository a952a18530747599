// Package validation checks call inputs and decoded response shapes.
//
// Response shapes implement Shape[T]: they take a decoded payload in internal
// form (camelCase keys, time.Time values) and return a typed value or a
// KindValidation error. Struct[T] decodes into T and applies the validator
// library's struct tags:
//
//	type Channel struct {
//	    ID   int64  `json:"id" validate:"required"`
//	    Name string `json:"name" validate:"required"`
//	}
//	ch, err := validation.Struct[Channel]().Validate(raw)
//
// Call inputs are checked with the fluent Validator before any request is
// described:
//
//	err := validation.New().Positive("channelId", id).Required("title", title).Validate()
package validation
