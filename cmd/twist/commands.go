package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/kbukum/twistkit/batch"
	"github.com/kbukum/twistkit/twist"
)

type command struct {
	summary string
	run     func(ctx context.Context, c *twist.Client, args []string) (any, error)
}

var commandOrder = []string{"session", "workspaces", "channels", "threads", "search", "channel-info"}

var commands = map[string]command{
	"session": {
		summary: "show the user the token belongs to",
		run: func(ctx context.Context, c *twist.Client, _ []string) (any, error) {
			return c.Users.GetSessionUser(ctx)
		},
	},
	"workspaces": {
		summary: "list workspaces",
		run: func(ctx context.Context, c *twist.Client, _ []string) (any, error) {
			return c.Workspaces.GetWorkspaces(ctx)
		},
	},
	"channels":     {summary: "list the channels of a workspace (-w ID)", run: runChannels},
	"threads":      {summary: "list the threads of a channel (-c ID)", run: runThreads},
	"search":       {summary: "search a workspace (-w ID -q QUERY)", run: runSearch},
	"channel-info": {summary: "fetch several channels in one batch request", run: runChannelInfo},
}

func runChannels(ctx context.Context, c *twist.Client, args []string) (any, error) {
	fs := pflag.NewFlagSet("channels", pflag.ContinueOnError)
	workspace := fs.Int64P("workspace", "w", 0, "workspace ID")
	archived := fs.Bool("archived", false, "list archived channels only")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var opts *twist.GetChannelsOptions
	if fs.Changed("archived") {
		opts = &twist.GetChannelsOptions{Archived: archived}
	}
	return c.Channels.GetChannels(ctx, *workspace, opts)
}

func runThreads(ctx context.Context, c *twist.Client, args []string) (any, error) {
	fs := pflag.NewFlagSet("threads", pflag.ContinueOnError)
	channel := fs.Int64P("channel", "c", 0, "channel ID")
	filter := fs.String("filter", "", "all, unread or starred")
	limit := fs.IntP("limit", "n", 0, "maximum number of threads")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts := &twist.GetThreadsOptions{Filter: *filter}
	if fs.Changed("limit") {
		opts.Limit = limit
	}
	return c.Threads.GetThreads(ctx, *channel, opts)
}

func runSearch(ctx context.Context, c *twist.Client, args []string) (any, error) {
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	workspace := fs.Int64P("workspace", "w", 0, "workspace ID")
	query := fs.StringP("query", "q", "", "search text")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c.Search.Query(ctx, *workspace, *query, nil)
}

// channelInfo is one line of channel-info output.
type channelInfo struct {
	ID      int64          `json:"id"`
	Channel *twist.Channel `json:"channel,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func runChannelInfo(ctx context.Context, c *twist.Client, args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("channel-info needs at least one channel ID")
	}
	ids := make([]int64, len(args))
	for i, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid channel ID %q", a)
		}
		ids[i] = id
	}

	b := c.NewBatch()
	pending := make([]*batch.Pending[twist.Channel], len(ids))
	for i, id := range ids {
		pending[i] = batch.Add(b, c.Channels.DescribeGetChannel(id))
	}
	if _, err := b.Execute(ctx); err != nil {
		return nil, err
	}

	out := make([]channelInfo, len(ids))
	for i, p := range pending {
		out[i].ID = ids[i]
		ch, err := p.Result()
		if err != nil {
			out[i].Error = err.Error()
			continue
		}
		out[i].Channel = &ch
	}
	return out, nil
}
