package request

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	twerrors "github.com/kbukum/twistkit/errors"
	"github.com/kbukum/twistkit/transport"
	"github.com/kbukum/twistkit/validation"
)

// recordingTransport captures the outbound request and replies with a canned response.
type recordingTransport struct {
	last *transport.Request
	resp *transport.Response
	err  error
}

func (r *recordingTransport) Send(_ context.Context, req *transport.Request) (*transport.Response, error) {
	r.last = req
	return r.resp, r.err
}

func okJSON(body string) *transport.Response {
	return &transport.Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(body),
	}
}

func TestExecute_GET_QueryTranslation(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{"id":1}`)}
	exec := NewExecutor(rt)

	var missing *int64
	_, err := exec.Execute(context.Background(), http.MethodGet, "https://api.test/api/", "/v3/threads/get", "tok", Params{
		"channelId":   int64(7),
		"newerThanTs": nil,
		"limit":       missing,
		"asIds":       true,
		"order":       "desc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rt.last.Method != http.MethodGet {
		t.Errorf("expected GET, got %s", rt.last.Method)
	}
	want := "https://api.test/api/v3/threads/get?as_ids=true&channel_id=7&order=desc"
	if rt.last.URL != want {
		t.Errorf("expected URL %s, got %s", want, rt.last.URL)
	}
	if strings.Contains(rt.last.URL, "undefined") || strings.Contains(rt.last.URL, "limit") {
		t.Errorf("absent params leaked into query: %s", rt.last.URL)
	}
	if rt.last.Body != nil {
		t.Errorf("GET must not send a body, got %q", rt.last.Body)
	}
	if got := rt.last.Headers["Authorization"]; got != "Bearer tok" {
		t.Errorf("expected bearer token, got %q", got)
	}
	if _, ok := rt.last.Headers["Content-Type"]; ok {
		t.Error("GET must not set Content-Type")
	}
}

func TestExecute_GET_CompositeAndTimeValues(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`[]`)}
	exec := NewExecutor(rt)

	since := time.Unix(1700000000, 0)
	_, err := exec.Execute(context.Background(), http.MethodGet, "https://api.test/api", "v3/comments/get", "tok", Params{
		"threadId": 3,
		"from":     &since,
		"ids":      []int64{1, 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://api.test/api/v3/comments/get?from_ts=1700000000&ids=%5B1%2C2%5D&thread_id=3"
	if rt.last.URL != want {
		t.Errorf("expected URL %s, got %s", want, rt.last.URL)
	}
}

func TestExecute_POST_Body(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{"id":10,"channel_id":3}`)}
	exec := NewExecutor(rt, WithUserAgent("twistkit-test"))

	var noRecipients []int64
	env, err := exec.Execute(context.Background(), "post", "https://api.test/api", "v3/threads/add", "tok", Params{
		"channelId":  3,
		"title":      "Hello",
		"recipients": noRecipients,
		"groups":     nil,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.last.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", rt.last.Method)
	}
	if rt.last.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected JSON content type, got %q", rt.last.Headers["Content-Type"])
	}
	if rt.last.Headers["User-Agent"] != "twistkit-test" {
		t.Errorf("expected user agent, got %q", rt.last.Headers["User-Agent"])
	}
	if strings.Contains(rt.last.URL, "?") {
		t.Errorf("POST must not carry a query string: %s", rt.last.URL)
	}

	var body map[string]any
	if err := json.Unmarshal(rt.last.Body, &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["channel_id"] != 3.0 || body["title"] != "Hello" {
		t.Errorf("unexpected body %v", body)
	}
	if _, ok := body["groups"]; ok {
		t.Error("nil param must not appear as a body key")
	}
	if _, ok := body["channelId"]; ok {
		t.Error("internal key leaked to the wire")
	}

	wire := env.Body.(map[string]any)
	if wire["channel_id"] != 3.0 {
		t.Errorf("expected envelope body in wire form, got %v", wire)
	}
}

func TestExecute_POST_NoParams(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{}`)}
	exec := NewExecutor(rt)

	if _, err := exec.Execute(context.Background(), http.MethodPost, "https://api.test/api", "v3/users/logout", "tok", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.last.Body != nil {
		t.Errorf("absent params must send no body, got %q", rt.last.Body)
	}
}

func TestExecute_APIError(t *testing.T) {
	rt := &recordingTransport{resp: &transport.Response{
		StatusCode: 401,
		Body:       []byte(`{"error_code":"INVALID_TOKEN","error_string":"Invalid token"}`),
	}}
	exec := NewExecutor(rt)

	env, err := exec.Execute(context.Background(), http.MethodGet, "https://api.test/api", "v3/users/get_session_user", "bad", nil)
	if env != nil {
		t.Errorf("expected nil envelope on error, got %+v", env)
	}
	if !twerrors.IsAPI(err) {
		t.Fatalf("expected API error, got %v", err)
	}
	if !twerrors.HasCode(err, "INVALID_TOKEN") {
		t.Errorf("expected INVALID_TOKEN code, got %v", err)
	}
	e, _ := twerrors.As(err)
	if e.StatusCode != 401 || e.Message != "Invalid token" {
		t.Errorf("unexpected error fields %+v", e)
	}
	body := e.Body.(map[string]any)
	if body["errorCode"] != "INVALID_TOKEN" {
		t.Errorf("expected decoded error body in internal form, got %v", body)
	}
}

func TestExecute_APIError_NonJSONBody(t *testing.T) {
	rt := &recordingTransport{resp: &transport.Response{StatusCode: 502, Body: []byte("<html>bad gateway</html>")}}
	_, err := NewExecutor(rt).Execute(context.Background(), http.MethodGet, "https://api.test/api", "v3/x", "tok", nil)
	e, ok := twerrors.As(err)
	if !ok || e.Kind != twerrors.KindAPI {
		t.Fatalf("expected API error, got %v", err)
	}
	if e.Body != "<html>bad gateway</html>" {
		t.Errorf("expected raw text body, got %#v", e.Body)
	}
	if !e.Retryable {
		t.Error("502 should be flagged retryable")
	}
}

func TestExecute_EmptyBodyIsNil(t *testing.T) {
	for _, raw := range []string{"", "  \n"} {
		rt := &recordingTransport{resp: &transport.Response{StatusCode: 200, Body: []byte(raw)}}
		env, err := NewExecutor(rt).Execute(context.Background(), http.MethodPost, "https://api.test/api", "v3/x", "tok", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.Body != nil {
			t.Errorf("expected nil body for %q, got %#v", raw, env.Body)
		}
		if env.Headers == nil {
			t.Error("expected non-nil headers map")
		}
	}
}

func TestExecute_MalformedJSON(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{"id":`)}
	_, err := NewExecutor(rt).Execute(context.Background(), http.MethodGet, "https://api.test/api", "v3/x", "tok", nil)
	if !twerrors.IsProtocol(err) {
		t.Fatalf("expected protocol error, got %v", err)
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Errorf("expected the json error to be kept as cause, got %v", err)
	}
}

func TestExecute_TransportFailure(t *testing.T) {
	cause := errors.New("dns lookup failed")
	rt := &recordingTransport{err: cause}
	_, err := NewExecutor(rt).Execute(context.Background(), http.MethodGet, "https://api.test/api", "v3/x", "tok", nil)
	if !twerrors.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the adapter error to be preserved")
	}
}

func TestExecute_ContextErrors(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	rt := &recordingTransport{err: canceled.Err()}
	_, err := NewExecutor(rt).Execute(canceled, http.MethodGet, "https://api.test/api", "v3/x", "tok", nil)
	if !twerrors.IsTransport(err) || twerrors.IsTimeout(err) {
		t.Errorf("expected non-timeout transport error for cancellation, got %v", err)
	}

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	rt = &recordingTransport{err: expired.Err()}
	_, err = NewExecutor(rt).Execute(expired, http.MethodGet, "https://api.test/api", "v3/x", "tok", nil)
	if !twerrors.IsTimeout(err) {
		t.Errorf("expected timeout error for an expired deadline, got %v", err)
	}
}

func TestExecute_UsageErrors(t *testing.T) {
	exec := NewExecutor(&recordingTransport{resp: okJSON(`{}`)})
	if _, err := exec.Execute(context.Background(), http.MethodDelete, "https://api.test/api", "v3/x", "tok", nil); !twerrors.IsUsage(err) {
		t.Errorf("expected usage error for DELETE, got %v", err)
	}
	if _, err := exec.Execute(context.Background(), http.MethodGet, "", "v3/x", "tok", nil); !twerrors.IsUsage(err) {
		t.Errorf("expected usage error for empty base URI, got %v", err)
	}
}

func TestExecute_RejectsNumericTimestampKey(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{}`)}
	params := Params{"newerThanTs": int64(1700000000)}

	_, err := NewExecutor(rt).Execute(context.Background(), http.MethodGet, "https://api.test/api", "v3/threads/get", "tok", params)
	if !twerrors.IsUsage(err) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if rt.last != nil {
		t.Error("request must not reach the transport")
	}

	d := Get[any]("v3/threads/get", params, nil)
	if !twerrors.IsUsage(d.Err()) {
		t.Errorf("expected descriptor to carry a usage error, got %v", d.Err())
	}

	ok := Get[any]("v3/threads/get", Params{"newerThan": time.Unix(1700000000, 0), "lastTs": nil}, nil)
	if ok.Err() != nil {
		t.Errorf("unexpected error for time-valued params: %v", ok.Err())
	}
}

func TestExecute_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	rt := &recordingTransport{resp: &transport.Response{StatusCode: 404, Body: []byte(`{"error_code":"NOT_FOUND"}`)}}

	exec := NewExecutor(rt, WithTracer(tp.Tracer("test")))
	_, _ = exec.Execute(context.Background(), http.MethodGet, "https://api.test/api", "v3/x", "tok", nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	attrs := map[string]any{}
	for _, a := range spans[0].Attributes() {
		attrs[string(a.Key)] = a.Value.AsInterface()
	}
	if attrs["http.response.status_code"] != int64(404) {
		t.Errorf("expected status attribute 404, got %v", attrs["http.response.status_code"])
	}
	if attrs["twist.error.kind"] != "API" {
		t.Errorf("expected error kind attribute, got %v", attrs["twist.error.kind"])
	}
}

// Identical physical exchanges must produce identical envelopes whichever
// adapter carries them.
func TestExecute_AdapterSubstitutability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Date", "Mon, 02 Jan 2006 15:04:05 GMT")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":5,"name":"general","posted_ts":1700000000}`)
	}))
	defer srv.Close()

	native, err := transport.NewHTTP(transport.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	proxied := transport.Func(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range req.Headers {
			httpReq.Header.Set(k, v)
		}
		resp, err := http.DefaultClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &transport.Response{StatusCode: resp.StatusCode, Headers: transport.FlattenHeaders(resp.Header), Body: body}, nil
	})

	params := Params{"id": 5}
	a, err := NewExecutor(native).Execute(context.Background(), http.MethodGet, srv.URL, "v3/channels/getone", "tok", params)
	if err != nil {
		t.Fatalf("native: %v", err)
	}
	b, err := NewExecutor(proxied).Execute(context.Background(), http.MethodGet, srv.URL, "v3/channels/getone", "tok", params)
	if err != nil {
		t.Fatalf("proxied: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("envelopes differ:\nnative:  %+v\nproxied: %+v", a, b)
	}
}

type channel struct {
	ID     int64     `json:"id" validate:"required"`
	Name   string    `json:"name" validate:"required"`
	Posted time.Time `json:"posted"`
}

func TestDo_DecodesAndValidates(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{"id":5,"name":"general","posted_ts":1700000000}`)}
	sess := Session{Executor: NewExecutor(rt), BaseURI: "https://api.test/api", Token: "tok"}

	ch, err := Do(context.Background(), sess, Get("v3/channels/getone", Params{"id": 5}, validation.Struct[channel]()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.ID != 5 || ch.Name != "general" || ch.Posted.Unix() != 1700000000 {
		t.Errorf("unexpected channel %+v", ch)
	}
}

func TestDo_ValidationFailure(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{"id":5}`)}
	sess := Session{Executor: NewExecutor(rt), BaseURI: "https://api.test/api", Token: "tok"}

	_, err := Do(context.Background(), sess, Get("v3/channels/getone", nil, validation.Struct[channel]()))
	if !twerrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDo_NoShape(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{"thread_id":1}`)}
	sess := Session{Executor: NewExecutor(rt), BaseURI: "https://api.test/api", Token: "tok"}

	v, err := Do(context.Background(), sess, Post[any]("v3/threads/mark_read", nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(map[string]any)["threadId"] != 1.0 {
		t.Errorf("expected internal form, got %#v", v)
	}

	rt.resp = &transport.Response{StatusCode: 200}
	v, err = Do(context.Background(), sess, Post[any]("v3/threads/mark_read", nil, nil))
	if err != nil || v != nil {
		t.Errorf("expected nil result for empty body, got %#v %v", v, err)
	}
}

func TestDo_EmptyBodyConcreteType(t *testing.T) {
	rt := &recordingTransport{resp: &transport.Response{StatusCode: 200}}
	sess := Session{Executor: NewExecutor(rt), BaseURI: "https://api.test/api", Token: "tok"}

	_, err := Do(context.Background(), sess, Get[channel]("v3/channels/getone", nil, nil))
	if !twerrors.IsValidation(err) {
		t.Errorf("expected validation error for empty body, got %v", err)
	}
	if _, err := Do(context.Background(), sess, Get[map[string]any]("v3/x", nil, nil)); !twerrors.IsValidation(err) {
		t.Errorf("expected validation error for empty body into a map, got %v", err)
	}
}

func TestDo_FailedDescriptor(t *testing.T) {
	rt := &recordingTransport{resp: okJSON(`{}`)}
	sess := Session{Executor: NewExecutor(rt), BaseURI: "https://api.test/api", Token: "tok"}

	want := twerrors.Usage("invalid arguments")
	_, err := Do(context.Background(), sess, Failed[channel](want))
	if !errors.Is(err, want) {
		t.Errorf("expected deferred error, got %v", err)
	}
	if rt.last != nil {
		t.Error("failed descriptor must not reach the transport")
	}
}

func TestDescriptor_Immutable(t *testing.T) {
	params := Params{"id": 1}
	d := Get[any]("v3/x", params, nil)
	params["id"] = 2

	got := d.Params()
	if got["id"] != 1 {
		t.Errorf("descriptor params changed through caller map: %v", got)
	}
	got["id"] = 3
	if d.Params()["id"] != 1 {
		t.Error("descriptor params changed through returned copy")
	}
	if d.Method() != http.MethodGet || d.Path() != "v3/x" {
		t.Errorf("unexpected descriptor %s %s", d.Method(), d.Path())
	}
}
