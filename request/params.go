package request

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"

	twerrors "github.com/kbukum/twistkit/errors"
	"github.com/kbukum/twistkit/naming"
)

// Params are call parameters in internal form (camelCase keys). Nil values,
// including typed nil pointers, are treated as absent.
type Params map[string]any

// Set returns p with key set to value, allocating p when nil.
func (p Params) Set(key string, value any) Params {
	if p == nil {
		p = Params{}
	}
	p[key] = value
	return p
}

// SetIf sets key only when cond holds.
func (p Params) SetIf(cond bool, key string, value any) Params {
	if !cond {
		return p
	}
	return p.Set(key, value)
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Wire drops absent values, dereferences pointers and translates the
// result to wire form. It returns nil when nothing remains.
func (p Params) Wire() map[string]any {
	internal := p.internal()
	if len(internal) == 0 {
		return nil
	}
	return naming.ToWire(internal).(map[string]any)
}

// Check reports params that would not survive translation, such as a
// number under a key ending in "Ts". The error has KindUsage.
func (p Params) Check() error {
	if err := naming.CheckKeys(p.internal()); err != nil {
		return twerrors.Usage(err.Error()).WithCause(err)
	}
	return nil
}

func (p Params) internal() map[string]any {
	internal := make(map[string]any, len(p))
	for k, v := range p {
		if v, ok := present(v); ok {
			internal[k] = v
		}
	}
	return internal
}

func present(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// encodeQuery renders wire params as a query string with sorted keys.
// Scalars use their literal form; slices and maps are JSON encoded.
func encodeQuery(wire map[string]any) (string, error) {
	if len(wire) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(wire))
	for k := range wire {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := url.Values{}
	for _, k := range keys {
		s, err := queryValue(wire[k])
		if err != nil {
			return "", fmt.Errorf("encode query parameter %q: %w", k, err)
		}
		q.Set(k, s)
	}
	return q.Encode(), nil
}

func queryValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
