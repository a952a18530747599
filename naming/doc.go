// Package naming translates between the API's wire format (snake_case keys,
// Unix-epoch timestamps) and the internal format used by in-process callers
// (camelCase keys, time.Time values).
//
// Translation is recursive over map[string]any and []any; every other value
// passes through unchanged. Keys ending in "_ts" that carry a number become
// time.Time values under the key without the suffix, and internal time.Time
// values are written back as "<snake_key>_ts" seconds:
//
//	naming.FromWire(map[string]any{"posted_ts": 1700000000.0, "thread_id": 7.0})
//	// map[string]any{"posted": time.Unix(1700000000, 0).UTC(), "threadId": 7.0}
//
// Internal keys are expected in lowerCamel form without underscores, and a key
// ending in "Ts" must not hold a number (CheckKeys reports violations). For such
// values FromWire(ToWire(x)) returns x, with times truncated to microseconds.
package naming
