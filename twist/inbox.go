package twist

import (
	"context"
	"time"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Inbox reads the session user's inbox.
type Inbox struct {
	s request.Session
}

// InboxOptions filters the inbox.
type InboxOptions struct {
	Since *time.Time
	Until *time.Time
	Limit *int
	// ArchiveFilter is "active", "archived" or "all".
	ArchiveFilter string
}

var archiveFilters = []string{"active", "archived", "all"}

// DescribeGet describes Get without sending it.
func (i *Inbox) DescribeGet(workspaceID int64, opts *InboxOptions) request.Descriptor[[]InboxThread] {
	v := validation.New().Positive("workspaceId", workspaceID)
	params := request.Params{"workspaceId": workspaceID}
	if opts != nil {
		if opts.ArchiveFilter != "" {
			v.OneOf("archiveFilter", opts.ArchiveFilter, archiveFilters)
			params.Set("archiveFilter", opts.ArchiveFilter)
		}
		params.Set("since", opts.Since)
		params.Set("until", opts.Until)
		params.Set("limit", opts.Limit)
	}
	return get[[]InboxThread](v3+"inbox/get", params, v)
}

// Get lists the threads in the inbox.
func (i *Inbox) Get(ctx context.Context, workspaceID int64, opts *InboxOptions) ([]InboxThread, error) {
	return request.Do(ctx, i.s, i.DescribeGet(workspaceID, opts))
}
