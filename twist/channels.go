package twist

import (
	"context"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Channels reads and manages channels.
type Channels struct {
	s request.Session
}

// GetChannelsOptions filters GetChannels.
type GetChannelsOptions struct {
	// Archived selects archived (true) or active (false) channels; nil
	// returns both.
	Archived *bool
}

// NewChannel holds the fields of a channel to create.
type NewChannel struct {
	WorkspaceID int64
	Name        string
	Description string
	Public      bool
	Color       *int
	UserIDs     []int64
}

const maxChannelName = 80

// DescribeGetChannels describes GetChannels without sending it.
func (c *Channels) DescribeGetChannels(workspaceID int64, opts *GetChannelsOptions) request.Descriptor[[]Channel] {
	v := validation.New().Positive("workspaceId", workspaceID)
	params := request.Params{"workspaceId": workspaceID}
	if opts != nil {
		params.Set("archived", opts.Archived)
	}
	return get[[]Channel](v3+"channels/get", params, v)
}

// GetChannels lists the channels of a workspace.
func (c *Channels) GetChannels(ctx context.Context, workspaceID int64, opts *GetChannelsOptions) ([]Channel, error) {
	return request.Do(ctx, c.s, c.DescribeGetChannels(workspaceID, opts))
}

// DescribeGetChannel describes GetChannel without sending it.
func (c *Channels) DescribeGetChannel(id int64) request.Descriptor[Channel] {
	v := validation.New().Positive("id", id)
	return get[Channel](v3+"channels/getone", request.Params{"id": id}, v)
}

// GetChannel fetches one channel.
func (c *Channels) GetChannel(ctx context.Context, id int64) (Channel, error) {
	return request.Do(ctx, c.s, c.DescribeGetChannel(id))
}

// DescribeCreateChannel describes CreateChannel without sending it.
func (c *Channels) DescribeCreateChannel(ch NewChannel) request.Descriptor[Channel] {
	v := validation.New().
		Positive("workspaceId", ch.WorkspaceID).
		Required("name", ch.Name).
		MaxLength("name", ch.Name, maxChannelName)
	params := request.Params{
		"workspaceId": ch.WorkspaceID,
		"name":        ch.Name,
		"public":      ch.Public,
		"color":       ch.Color,
	}
	params.SetIf(ch.Description != "", "description", ch.Description)
	params.SetIf(len(ch.UserIDs) > 0, "userIds", ch.UserIDs)
	return post[Channel](v3+"channels/add", params, v)
}

// CreateChannel creates a channel and returns it.
func (c *Channels) CreateChannel(ctx context.Context, ch NewChannel) (Channel, error) {
	return request.Do(ctx, c.s, c.DescribeCreateChannel(ch))
}

// DescribeArchiveChannel describes ArchiveChannel without sending it.
func (c *Channels) DescribeArchiveChannel(id int64) request.Descriptor[any] {
	v := validation.New().Positive("id", id)
	return describeAck(v3+"channels/archive", request.Params{"id": id}, v)
}

// ArchiveChannel archives a channel.
func (c *Channels) ArchiveChannel(ctx context.Context, id int64) error {
	return ack(ctx, c.s, c.DescribeArchiveChannel(id))
}
