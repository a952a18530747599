package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	twerrors "github.com/kbukum/twistkit/errors"
	"github.com/kbukum/twistkit/logger"
	"github.com/kbukum/twistkit/observability"
	"github.com/kbukum/twistkit/request"
)

// Outcome is the settled result of one batch item.
type Outcome struct {
	// Index is the item's position in the batch.
	Index int
	// StatusCode is the item's HTTP status; zero when it never reached the
	// server.
	StatusCode int
	// Headers are the item's decoded response headers.
	Headers map[string]string
	// Value is the decoded, validated value when Err is nil.
	Value any
	Err   error
}

// replyItem is one element of the batch reply in wire form.
type replyItem struct {
	code    int
	headers any
	body    any
}

// Execute sends every added call as one physical request and settles each
// handle. It returns one Outcome per call, in the order they were added.
//
// The returned error is non-nil only when the batch as a whole failed: the
// physical call failed, or the reply could not be matched to the calls. In
// that case every handle is rejected with the same error. Calls whose
// descriptor carries an argument error are rejected locally and never sent.
// Executing twice returns ErrBatchExecuted.
func (b *Builder) Execute(ctx context.Context) ([]Outcome, error) {
	entries, err := b.take()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []Outcome{}, nil
	}
	if b.maxItems > 0 && len(entries) > b.maxItems {
		err := twerrors.Usage(fmt.Sprintf("batch has %d items, limit is %d", len(entries), b.maxItems))
		rejectAll(entries, err)
		return nil, err
	}

	outcomes := make([]Outcome, len(entries))
	requests := make([]any, 0, len(entries))
	sent := make([]int, 0, len(entries))
	for i, e := range entries {
		outcomes[i].Index = i
		method, path, params, argErr := e.call()
		if argErr != nil {
			e.reject(argErr)
			outcomes[i].Err = argErr
			continue
		}
		item := map[string]any{"method": method, "path": path}
		if wire := params.Wire(); wire != nil {
			item["params"] = wire
		}
		requests = append(requests, item)
		sent = append(sent, i)
	}
	if len(requests) == 0 {
		return outcomes, nil
	}

	batchID := uuid.NewString()
	tracer := b.session.Executor.Tracer()
	ctx, span := tracer.Start(ctx, observability.SpanBatch, trace.WithAttributes(
		attribute.String(observability.AttrBatchID, batchID),
		attribute.Int(observability.AttrBatchSize, len(requests)),
	))
	log := b.log.WithFields(logger.Fields(logger.FieldBatchID, batchID, logger.FieldItems, len(requests)))
	metrics := b.session.Executor.Metrics()
	start := time.Now()

	results, err := b.send(ctx, requests)
	if err != nil {
		rejectAll(entries, err)
		observability.EndSpan(span, err, twerrors.KindOf(err).String())
		metrics.RecordBatch(ctx, "error", 0, len(entries))
		log.Warn("batch failed", logger.Merge(
			logger.ErrorFields("execute", err),
			logger.Fields(logger.FieldDuration, time.Since(start).Milliseconds()),
		))
		return nil, err
	}

	failed := len(entries) - len(sent)
	for j, r := range results {
		i := sent[j]
		o := &outcomes[i]
		o.StatusCode = r.code
		o.Value, o.Headers, o.Err = settle(entries[i], r)
		if o.Err != nil {
			failed++
		}
	}

	span.SetAttributes(attribute.Int(observability.AttrBatchFail, failed))
	observability.EndSpan(span, nil, "")
	metrics.RecordBatch(ctx, "ok", len(entries)-failed, failed)
	log.Debug("batch completed", logger.Fields(
		logger.FieldFailed, failed,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return outcomes, nil
}

// send issues the physical call and returns exactly one reply item per
// request.
func (b *Builder) send(ctx context.Context, requests []any) ([]replyItem, error) {
	env, err := b.session.Execute(ctx, http.MethodPost, b.path, request.Params{"requests": requests})
	if err != nil {
		return nil, err
	}
	results, err := parseResults(env.Body)
	if err != nil {
		return nil, err
	}
	if len(results) != len(requests) {
		return nil, twerrors.Protocol(
			fmt.Sprintf("batch reply has %d items, expected %d", len(results), len(requests)), nil,
		).WithDetail("expected", len(requests)).WithDetail("received", len(results))
	}
	return results, nil
}

func parseResults(body any) ([]replyItem, error) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, twerrors.Protocol(fmt.Sprintf("batch reply is %T, expected an object", body), nil)
	}
	raw, ok := obj["results"].([]any)
	if !ok {
		return nil, twerrors.Protocol("batch reply has no results list", nil)
	}
	items := make([]replyItem, len(raw))
	for i, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			return nil, twerrors.Protocol(fmt.Sprintf("batch reply item %d is %T, expected an object", i, r), nil)
		}
		code, ok := m["code"].(float64)
		if !ok {
			return nil, twerrors.Protocol(fmt.Sprintf("batch reply item %d has no status code", i), nil)
		}
		items[i] = replyItem{code: int(code), headers: m["headers"], body: m["body"]}
	}
	return items, nil
}

// settle decodes one reply item and resolves or rejects its handle. Errors
// here belong to the item alone.
func settle(e entry, r replyItem) (any, map[string]string, error) {
	headers, err := decodeHeaders(r.headers)
	if err != nil {
		e.reject(err)
		return nil, nil, err
	}

	var raw []byte
	switch b := r.body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		// Some deployments embed the body as JSON rather than as a string.
		if raw, err = json.Marshal(b); err != nil {
			err = twerrors.Protocol("re-encode item body", err)
			e.reject(err)
			return nil, headers, err
		}
	}

	body, err := request.DecodeReply(r.code, raw)
	if err != nil {
		e.reject(err)
		return nil, headers, err
	}
	v, err := e.resolve(body)
	return v, headers, err
}

func decodeHeaders(v any) (map[string]string, error) {
	var m map[string]any
	switch h := v.(type) {
	case nil:
		return map[string]string{}, nil
	case string:
		if h == "" {
			return map[string]string{}, nil
		}
		if err := json.Unmarshal([]byte(h), &m); err != nil {
			return nil, twerrors.Protocol(fmt.Sprintf("decode item headers: %v", err), err)
		}
	case map[string]any:
		m = h
	default:
		return nil, twerrors.Protocol(fmt.Sprintf("item headers are %T", v), nil)
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if s, ok := val.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(val)
	}
	return out, nil
}

func rejectAll(entries []entry, err error) {
	for _, e := range entries {
		e.reject(err)
	}
}
