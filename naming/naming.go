package naming

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
)

// TimestampSuffix marks wire keys that carry Unix-epoch seconds.
const TimestampSuffix = "_ts"

// ToWire converts an internal value to its wire representation. Times are
// written with microsecond precision.
func ToWire(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			key := CamelToSnake(k)
			if t, ok := asTime(item); ok {
				out[key+TimestampSuffix] = epochSeconds(t)
				continue
			}
			out[key] = ToWire(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = ToWire(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = ToWire(item)
		}
		return out
	case time.Time:
		return epochSeconds(val)
	case *time.Time:
		if val == nil {
			return nil
		}
		return epochSeconds(*val)
	default:
		return v
	}
}

// FromWire converts a wire value to its internal representation.
// A null timestamp produces no internal key at all.
func FromWire(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if base, ok := strings.CutSuffix(k, TimestampSuffix); ok && base != "" {
				if item == nil {
					continue
				}
				if t, ok := fromEpoch(item); ok {
					out[SnakeToCamel(base)] = t
					continue
				}
			}
			out[SnakeToCamel(k)] = FromWire(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = FromWire(item)
		}
		return out
	default:
		return v
	}
}

// CheckKeys reports the first internal key that would not survive a round
// trip: a key ending in "Ts" whose value is a number or nil. FromWire would
// read it back as a time under the unsuffixed name, so callers should pass a
// time.Time under that name instead.
func CheckKeys(v any) error {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			snake := CamelToSnake(k)
			if strings.HasSuffix(snake, TimestampSuffix) && epochLike(item) {
				return fmt.Errorf("key %q holds %T; pass a time.Time under %q",
					k, item, SnakeToCamel(strings.TrimSuffix(snake, TimestampSuffix)))
			}
			if err := CheckKeys(item); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range val {
			if err := CheckKeys(item); err != nil {
				return err
			}
		}
	case []map[string]any:
		for _, item := range val {
			if err := CheckKeys(item); err != nil {
				return err
			}
		}
	}
	return nil
}

// epochLike reports whether FromWire would treat v as a timestamp value once
// it has crossed the wire.
func epochLike(v any) bool {
	switch v.(type) {
	case nil, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// CamelToSnake converts a lowerCamel key to snake_case. Every upper-case
// letter starts a new segment.
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnakeToCamel converts a snake_case key to lowerCamel.
func SnakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	upper := false
	for i, r := range s {
		if r == '_' && i > 0 {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

func epochSeconds(t time.Time) any {
	usec := t.Nanosecond() / int(time.Microsecond)
	if usec == 0 {
		return t.Unix()
	}
	return float64(t.Unix()) + float64(usec)/1e6
}

func fromEpoch(v any) (time.Time, bool) {
	var secs float64
	switch n := v.(type) {
	case float64:
		secs = n
	case float32:
		secs = float64(n)
	case int:
		return time.Unix(int64(n), 0).UTC(), true
	case int64:
		return time.Unix(n, 0).UTC(), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return time.Unix(i, 0).UTC(), true
		}
		f, err := n.Float64()
		if err != nil {
			return time.Time{}, false
		}
		secs = f
	default:
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*1e6))*int64(time.Microsecond)).UTC(), true
}
