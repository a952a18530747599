package twist

import (
	"context"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Conversations reads direct and group conversations.
type Conversations struct {
	s request.Session
}

// DescribeGetConversations describes GetConversations without sending it.
func (c *Conversations) DescribeGetConversations(workspaceID int64, archived *bool) request.Descriptor[[]Conversation] {
	v := validation.New().Positive("workspaceId", workspaceID)
	return get[[]Conversation](v3+"conversations/get", request.Params{
		"workspaceId": workspaceID,
		"archived":    archived,
	}, v)
}

// GetConversations lists the conversations of a workspace.
func (c *Conversations) GetConversations(ctx context.Context, workspaceID int64, archived *bool) ([]Conversation, error) {
	return request.Do(ctx, c.s, c.DescribeGetConversations(workspaceID, archived))
}

// DescribeGetConversation describes GetConversation without sending it.
func (c *Conversations) DescribeGetConversation(id int64) request.Descriptor[Conversation] {
	v := validation.New().Positive("id", id)
	return get[Conversation](v3+"conversations/getone", request.Params{"id": id}, v)
}

// GetConversation fetches one conversation.
func (c *Conversations) GetConversation(ctx context.Context, id int64) (Conversation, error) {
	return request.Do(ctx, c.s, c.DescribeGetConversation(id))
}

// ConversationMessages reads and posts conversation messages.
type ConversationMessages struct {
	s request.Session
}

// GetMessagesOptions pages through GetMessages.
type GetMessagesOptions struct {
	FromObjIndex *int
	Limit        *int
}

// DescribeGetMessages describes GetMessages without sending it.
func (m *ConversationMessages) DescribeGetMessages(conversationID int64, opts *GetMessagesOptions) request.Descriptor[[]ConversationMessage] {
	v := validation.New().Positive("conversationId", conversationID)
	params := request.Params{"conversationId": conversationID}
	if opts != nil {
		params.Set("fromObjIndex", opts.FromObjIndex)
		params.Set("limit", opts.Limit)
	}
	return get[[]ConversationMessage](v3+"conversation_messages/get", params, v)
}

// GetMessages lists the messages of a conversation.
func (m *ConversationMessages) GetMessages(ctx context.Context, conversationID int64, opts *GetMessagesOptions) ([]ConversationMessage, error) {
	return request.Do(ctx, m.s, m.DescribeGetMessages(conversationID, opts))
}

// DescribeCreateMessage describes CreateMessage without sending it.
func (m *ConversationMessages) DescribeCreateMessage(conversationID int64, content string) request.Descriptor[ConversationMessage] {
	v := validation.New().
		Positive("conversationId", conversationID).
		Required("content", content)
	return post[ConversationMessage](v3+"conversation_messages/add", request.Params{
		"conversationId": conversationID,
		"content":        content,
	}, v)
}

// CreateMessage posts a message to a conversation.
func (m *ConversationMessages) CreateMessage(ctx context.Context, conversationID int64, content string) (ConversationMessage, error) {
	return request.Do(ctx, m.s, m.DescribeCreateMessage(conversationID, content))
}
