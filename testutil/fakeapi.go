package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/twistkit/config"
)

// Token is the bearer token Config hands out.
const Token = "test-token"

func init() {
	gin.SetMode(gin.TestMode)
}

// headerBatchItem marks requests dispatched from inside a batch.
const headerBatchItem = "X-Twistkit-Batch-Item"

// Recorded is one request received by the fake API.
type Recorded struct {
	Method  string
	Path    string
	Query   url.Values
	Header  http.Header
	Body    []byte
	InBatch bool
}

// JSONBody decodes the recorded body as a JSON object.
func (r Recorded) JSONBody() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(r.Body, &m)
	return m
}

// BatchResult is one item of a batch reply as sent on the wire.
type BatchResult struct {
	Code    int    `json:"code"`
	Headers string `json:"headers"`
	Body    string `json:"body"`
}

// BatchRequest is one item of a batch request as received on the wire.
type BatchRequest struct {
	Method string         `json:"method"`
	Path   string         `json:"path"`
	Params map[string]any `json:"params"`
}

// FakeAPI is an in-process Twist API.
type FakeAPI struct {
	engine *gin.Engine
	ts     *httptest.Server

	mu         sync.Mutex
	requests   []Recorded
	batchHook  func([]BatchResult) []BatchResult
	batchCalls int
}

// NewFakeAPI starts a fake API that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{engine: gin.New()}
	f.engine.Use(f.record)
	f.engine.POST("/v3/batch", f.batch)
	f.engine.POST("/v4/batch", f.batch)
	f.ts = httptest.NewServer(f.engine)
	t.Cleanup(f.ts.Close)
	return f
}

// URL returns the API root.
func (f *FakeAPI) URL() string {
	return f.ts.URL
}

// Config returns client settings pointing at the fake API.
func (f *FakeAPI) Config() config.Client {
	return config.Client{Token: Token, BaseURL: f.URL()}
}

// Engine returns the gin engine for custom route registration.
func (f *FakeAPI) Engine() *gin.Engine {
	return f.engine
}

// Handle registers a handler.
func (f *FakeAPI) Handle(method, path string, h gin.HandlerFunc) {
	f.engine.Handle(method, path, h)
}

// JSON registers a route that always replies with status and body.
func (f *FakeAPI) JSON(method, path string, status int, body any) {
	f.engine.Handle(method, path, func(c *gin.Context) {
		c.JSON(status, body)
	})
}

// Requests returns every request received so far, batch items included.
func (f *FakeAPI) Requests() []Recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Recorded, len(f.requests))
	copy(out, f.requests)
	return out
}

// LastRequest returns the most recent request outside a batch.
func (f *FakeAPI) LastRequest() (Recorded, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if !f.requests[i].InBatch {
			return f.requests[i], true
		}
	}
	return Recorded{}, false
}

// BatchCalls returns how many physical batch requests were received.
func (f *FakeAPI) BatchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batchCalls
}

// SetBatchReply installs a hook that rewrites batch results before they are
// sent, e.g. to drop or reorder items.
func (f *FakeAPI) SetBatchReply(hook func([]BatchResult) []BatchResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchHook = hook
}

// Params merges the query string and JSON body of a request into one map.
// Handlers use it to read arguments regardless of method.
func Params(c *gin.Context) map[string]any {
	out := map[string]any{}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	if c.Request.Body != nil {
		data, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(data))
		var body map[string]any
		if json.Unmarshal(data, &body) == nil {
			for k, v := range body {
				out[k] = v
			}
		}
	}
	return out
}

func (f *FakeAPI) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	f.mu.Lock()
	f.requests = append(f.requests, Recorded{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Query:   c.Request.URL.Query(),
		Header:  c.Request.Header.Clone(),
		Body:    body,
		InBatch: c.GetHeader(headerBatchItem) != "",
	})
	f.mu.Unlock()
	c.Next()
}

func (f *FakeAPI) batch(c *gin.Context) {
	var payload struct {
		Requests []BatchRequest `json:"requests"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_code": "INVALID_BATCH", "error_string": err.Error()})
		return
	}

	results := make([]BatchResult, len(payload.Requests))
	for i, item := range payload.Requests {
		results[i] = f.dispatch(c.Request, item)
	}

	f.mu.Lock()
	f.batchCalls++
	hook := f.batchHook
	f.mu.Unlock()
	if hook != nil {
		results = hook(results)
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// dispatch runs one batch item through the router.
func (f *FakeAPI) dispatch(outer *http.Request, item BatchRequest) BatchResult {
	target := "/" + strings.TrimLeft(item.Path, "/")
	var body io.Reader
	if strings.EqualFold(item.Method, http.MethodGet) {
		if q := encodeQuery(item.Params); q != "" {
			target += "?" + q
		}
	} else if item.Params != nil {
		data, _ := json.Marshal(item.Params)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(strings.ToUpper(item.Method), target, body)
	req.Header.Set("Authorization", outer.Header.Get("Authorization"))
	req.Header.Set(headerBatchItem, "1")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)

	headers := map[string]string{}
	for k, v := range rec.Header() {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	encoded, _ := json.Marshal(headers)
	return BatchResult{Code: rec.Code, Headers: string(encoded), Body: rec.Body.String()}
}

func encodeQuery(params map[string]any) string {
	q := url.Values{}
	for k, v := range params {
		switch val := v.(type) {
		case nil:
		case string:
			q.Set(k, val)
		case bool:
			q.Set(k, strconv.FormatBool(val))
		case float64:
			q.Set(k, strconv.FormatFloat(val, 'f', -1, 64))
		default:
			data, _ := json.Marshal(val)
			q.Set(k, string(data))
		}
	}
	return q.Encode()
}
