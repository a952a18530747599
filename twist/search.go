package twist

import (
	"context"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Search runs full-text queries. It uses API v4.
type Search struct {
	s request.Session
}

// SearchOptions narrows a query.
type SearchOptions struct {
	ChannelIDs []int64
	AuthorIDs  []int64
	Limit      *int
	CursorMark string
}

// DescribeQuery describes Query without sending it.
func (s *Search) DescribeQuery(workspaceID int64, query string, opts *SearchOptions) request.Descriptor[SearchResult] {
	v := validation.New().
		Positive("workspaceId", workspaceID).
		Required("query", query)
	params := request.Params{"workspaceId": workspaceID, "query": query}
	if opts != nil {
		params.SetIf(len(opts.ChannelIDs) > 0, "channelIds", opts.ChannelIDs)
		params.SetIf(len(opts.AuthorIDs) > 0, "authorIds", opts.AuthorIDs)
		params.SetIf(opts.CursorMark != "", "cursorMark", opts.CursorMark)
		params.Set("limit", opts.Limit)
	}
	return get[SearchResult](v4+"search/query", params, v)
}

// Query searches a workspace.
func (s *Search) Query(ctx context.Context, workspaceID int64, query string, opts *SearchOptions) (SearchResult, error) {
	return request.Do(ctx, s.s, s.DescribeQuery(workspaceID, query, opts))
}
