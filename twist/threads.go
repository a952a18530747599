package twist

import (
	"context"
	"time"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Threads reads and creates threads.
type Threads struct {
	s request.Session
}

// GetThreadsOptions filters GetThreads. Nil fields are not sent.
type GetThreadsOptions struct {
	Filter    string // "all", "unread" or "starred"
	Limit     *int
	NewerThan *time.Time
	OlderThan *time.Time
}

var threadFilters = []string{"all", "unread", "starred"}

// NewThread holds the fields of a thread to create.
type NewThread struct {
	ChannelID  int64
	Title      string
	Content    string
	Recipients []int64
}

// DescribeGetThreads describes GetThreads without sending it.
func (t *Threads) DescribeGetThreads(channelID int64, opts *GetThreadsOptions) request.Descriptor[[]Thread] {
	v := validation.New().Positive("channelId", channelID)
	params := request.Params{"channelId": channelID}
	if opts != nil {
		if opts.Filter != "" {
			v.OneOf("filter", opts.Filter, threadFilters)
			params.Set("filter", opts.Filter)
		}
		if opts.Limit != nil {
			v.Positive("limit", int64(*opts.Limit))
		}
		params.Set("limit", opts.Limit)
		params.Set("newerThan", opts.NewerThan)
		params.Set("olderThan", opts.OlderThan)
	}
	return get[[]Thread](v3+"threads/get", params, v)
}

// GetThreads lists the threads of a channel.
func (t *Threads) GetThreads(ctx context.Context, channelID int64, opts *GetThreadsOptions) ([]Thread, error) {
	return request.Do(ctx, t.s, t.DescribeGetThreads(channelID, opts))
}

// DescribeGetThread describes GetThread without sending it.
func (t *Threads) DescribeGetThread(id int64) request.Descriptor[Thread] {
	v := validation.New().Positive("id", id)
	return get[Thread](v3+"threads/getone", request.Params{"id": id}, v)
}

// GetThread fetches one thread.
func (t *Threads) GetThread(ctx context.Context, id int64) (Thread, error) {
	return request.Do(ctx, t.s, t.DescribeGetThread(id))
}

// DescribeCreateThread describes CreateThread without sending it.
func (t *Threads) DescribeCreateThread(th NewThread) request.Descriptor[Thread] {
	v := validation.New().
		Positive("channelId", th.ChannelID).
		Required("title", th.Title).
		Required("content", th.Content)
	params := request.Params{
		"channelId": th.ChannelID,
		"title":     th.Title,
		"content":   th.Content,
	}
	params.SetIf(len(th.Recipients) > 0, "recipients", th.Recipients)
	return post[Thread](v3+"threads/add", params, v)
}

// CreateThread posts a new thread.
func (t *Threads) CreateThread(ctx context.Context, th NewThread) (Thread, error) {
	return request.Do(ctx, t.s, t.DescribeCreateThread(th))
}
