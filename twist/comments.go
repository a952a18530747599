package twist

import (
	"context"
	"time"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Comments reads and posts thread comments.
type Comments struct {
	s request.Session
}

// GetCommentsOptions filters GetComments.
type GetCommentsOptions struct {
	FromObjIndex *int
	To           *time.Time
	Limit        *int
}

// DescribeGetComments describes GetComments without sending it.
func (c *Comments) DescribeGetComments(threadID int64, opts *GetCommentsOptions) request.Descriptor[[]Comment] {
	v := validation.New().Positive("threadId", threadID)
	params := request.Params{"threadId": threadID}
	if opts != nil {
		params.Set("fromObjIndex", opts.FromObjIndex)
		params.Set("to", opts.To)
		params.Set("limit", opts.Limit)
	}
	return get[[]Comment](v3+"comments/get", params, v)
}

// GetComments lists the comments of a thread.
func (c *Comments) GetComments(ctx context.Context, threadID int64, opts *GetCommentsOptions) ([]Comment, error) {
	return request.Do(ctx, c.s, c.DescribeGetComments(threadID, opts))
}

// DescribeCreateComment describes CreateComment without sending it.
func (c *Comments) DescribeCreateComment(threadID int64, content string, recipients []int64) request.Descriptor[Comment] {
	v := validation.New().
		Positive("threadId", threadID).
		Required("content", content)
	params := request.Params{"threadId": threadID, "content": content}
	params.SetIf(len(recipients) > 0, "recipients", recipients)
	return post[Comment](v3+"comments/add", params, v)
}

// CreateComment posts a comment to a thread.
func (c *Comments) CreateComment(ctx context.Context, threadID int64, content string, recipients []int64) (Comment, error) {
	return request.Do(ctx, c.s, c.DescribeCreateComment(threadID, content, recipients))
}
