package naming

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id", "id"},
		{"channelId", "channel_id"},
		{"lastUpdatedTs", "last_updated_ts"},
		{"v4Id", "v4_id"},
		{"userID", "user_i_d"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CamelToSnake(tt.in); got != tt.want {
			t.Errorf("CamelToSnake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSnakeToCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id", "id"},
		{"channel_id", "channelId"},
		{"error_string", "errorString"},
		{"user_i_d", "userID"},
		{"_private", "_private"},
	}
	for _, tt := range tests {
		if got := SnakeToCamel(tt.in); got != tt.want {
			t.Errorf("SnakeToCamel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToWire_Nested(t *testing.T) {
	in := map[string]any{
		"workspaceId": 1,
		"recipients":  []any{map[string]any{"userId": 2}},
		"meta":        map[string]any{"isArchived": true},
		"name":        "general",
	}
	got := ToWire(in)
	want := map[string]any{
		"workspace_id": 1,
		"recipients":   []any{map[string]any{"user_id": 2}},
		"meta":         map[string]any{"is_archived": true},
		"name":         "general",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToWire() = %#v, want %#v", got, want)
	}
}

func TestToWire_Timestamp(t *testing.T) {
	posted := time.Unix(1700000000, 0).UTC()
	got := ToWire(map[string]any{"posted": posted}).(map[string]any)
	if got["posted_ts"] != int64(1700000000) {
		t.Errorf("expected posted_ts=1700000000, got %#v", got["posted_ts"])
	}
	if _, ok := got["posted"]; ok {
		t.Error("expected no bare 'posted' key on the wire")
	}
}

func TestFromWire_Timestamps(t *testing.T) {
	var wire any
	if err := json.Unmarshal([]byte(`{"id":5,"posted_ts":1700000000,"last_updated_ts":null,"thread_id":9}`), &wire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := FromWire(wire).(map[string]any)

	posted, ok := got["posted"].(time.Time)
	if !ok {
		t.Fatalf("expected posted to be time.Time, got %T", got["posted"])
	}
	if !posted.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("unexpected posted time %v", posted)
	}
	if _, ok := got["lastUpdated"]; ok {
		t.Error("null timestamp must not produce an internal field")
	}
	if _, ok := got["lastUpdatedTs"]; ok {
		t.Error("null timestamp must not leak as a raw key")
	}
	if got["threadId"] != 9.0 {
		t.Errorf("expected threadId=9, got %#v", got["threadId"])
	}
}

func TestFromWire_FractionalTimestamp(t *testing.T) {
	got := FromWire(map[string]any{"created_ts": 1700000000.5}).(map[string]any)
	created := got["created"].(time.Time)
	if created.Nanosecond() != int(500*time.Millisecond) {
		t.Errorf("expected half second, got %dns", created.Nanosecond())
	}
}

func TestFromWire_NonNumericTimestampKey(t *testing.T) {
	got := FromWire(map[string]any{"format_ts": "iso"}).(map[string]any)
	if got["formatTs"] != "iso" {
		t.Errorf("expected non-numeric _ts value to keep its key, got %#v", got)
	}
}

func TestScalarsPassThrough(t *testing.T) {
	for _, v := range []any{nil, "text", 1.5, true, int64(3)} {
		if got := ToWire(v); got != v {
			t.Errorf("ToWire(%#v) = %#v", v, got)
		}
		if got := FromWire(v); got != v {
			t.Errorf("FromWire(%#v) = %#v", v, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []map[string]any{
		{},
		{"id": 1.0},
		{"channelId": 3.0, "title": "hello", "recipients": []any{1.0, 2.0}},
		{"posted": time.Unix(1600000000, 0).UTC(), "nested": map[string]any{"lastUpdated": time.Unix(1600000001, 0).UTC()}},
		{"items": []any{map[string]any{"threadId": 4.0, "isUnread": false}}, "userID": "x"},
		{"v4Id": "z", "emptyList": []any{}, "nothing": nil},
		{"newerThan": time.Unix(1600000000, 123456000).UTC()},
		{"postedTs": time.Unix(1700000000, 0).UTC(), "formatTs": "iso"},
	}
	for i, in := range cases {
		got := FromWire(ToWire(in))
		if !reflect.DeepEqual(got, in) {
			t.Errorf("case %d: round trip = %#v, want %#v", i, got, in)
		}
	}
}

func TestToWire_TruncatesToMicroseconds(t *testing.T) {
	in := time.Unix(1600000000, 123456789).UTC()
	got := FromWire(ToWire(map[string]any{"posted": in})).(map[string]any)["posted"].(time.Time)
	if want := in.Truncate(time.Microsecond); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if sub := time.Unix(1600000000, 999).UTC(); ToWire(sub) != int64(1600000000) {
		t.Errorf("sub-microsecond time should encode as whole seconds, got %#v", ToWire(sub))
	}
}

func TestCheckKeys(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		wantErr bool
	}{
		{"plain keys", map[string]any{"threadId": 1, "title": "x"}, false},
		{"time under Ts key", map[string]any{"postedTs": time.Unix(1, 0)}, false},
		{"number under Ts key", map[string]any{"newerThanTs": int64(1700000000)}, true},
		{"string under Ts key", map[string]any{"formatTs": "iso"}, false},
		{"nil under Ts key", map[string]any{"lastTs": nil}, true},
		{"nested in list", map[string]any{"items": []any{map[string]any{"lastTs": 5.0}}}, true},
		{"nested map", map[string]any{"filter": map[string]any{"olderThanTs": 1}}, true},
		{"scalar", 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckKeys(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckKeys() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRoundTrip_ThroughJSON(t *testing.T) {
	in := map[string]any{
		"workspaceId": 12.0,
		"posted":      time.Unix(1650000000, 0).UTC(),
		"tags":        []any{"a", "b"},
	}
	data, err := json.Marshal(ToWire(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var wire any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FromWire(wire); !reflect.DeepEqual(got, in) {
		t.Errorf("json round trip = %#v, want %#v", got, in)
	}
}
