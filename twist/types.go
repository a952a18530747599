package twist

import "time"

// Workspace is a Twist team.
type Workspace struct {
	ID                  int64     `json:"id" validate:"required"`
	Name                string    `json:"name" validate:"required"`
	Creator             int64     `json:"creator"`
	Created             time.Time `json:"created"`
	DefaultChannel      int64     `json:"defaultChannel"`
	DefaultConversation int64     `json:"defaultConversation"`
	Color               int       `json:"color"`
	Plan                string    `json:"plan"`
	AvatarID            string    `json:"avatarId"`
}

// User is a workspace member or the session user.
type User struct {
	ID         int64  `json:"id" validate:"required"`
	Name       string `json:"name"`
	ShortName  string `json:"shortName"`
	Email      string `json:"email"`
	Timezone   string `json:"timezone"`
	Lang       string `json:"lang"`
	Bot        bool   `json:"bot"`
	Removed    bool   `json:"removed"`
	Away       bool   `json:"away"`
	AvatarID   string `json:"avatarId"`
	UserType   string `json:"userType"`
	Restricted bool   `json:"restricted"`
	// Token is only present on the session user.
	Token string `json:"token,omitempty"`
}

// Channel groups threads inside a workspace.
type Channel struct {
	ID          int64     `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	WorkspaceID int64     `json:"workspaceId" validate:"required"`
	Description string    `json:"description"`
	Creator     int64     `json:"creator"`
	Color       int       `json:"color"`
	Public      bool      `json:"public"`
	Archived    bool      `json:"archived"`
	Created     time.Time `json:"created"`
	UserIDs     []int64   `json:"userIds"`
}

// Thread is a titled discussion in a channel.
type Thread struct {
	ID           int64     `json:"id" validate:"required"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ChannelID    int64     `json:"channelId" validate:"required"`
	WorkspaceID  int64     `json:"workspaceId"`
	Creator      int64     `json:"creator"`
	CommentCount int       `json:"commentCount"`
	Pinned       bool      `json:"pinned"`
	IsArchived   bool      `json:"isArchived"`
	Posted       time.Time `json:"posted"`
	LastUpdated  time.Time `json:"lastUpdated"`
	Recipients   []int64   `json:"recipients"`
}

// Comment is a reply in a thread.
type Comment struct {
	ID          int64     `json:"id" validate:"required"`
	Content     string    `json:"content"`
	ThreadID    int64     `json:"threadId" validate:"required"`
	ChannelID   int64     `json:"channelId"`
	WorkspaceID int64     `json:"workspaceId"`
	Creator     int64     `json:"creator"`
	ObjIndex    int       `json:"objIndex"`
	Posted      time.Time `json:"posted"`
	Recipients  []int64   `json:"recipients"`
}

// Conversation is a direct or group message thread.
type Conversation struct {
	ID               int64     `json:"id" validate:"required"`
	WorkspaceID      int64     `json:"workspaceId" validate:"required"`
	Title            string    `json:"title"`
	Creator          int64     `json:"creator"`
	Archived         bool      `json:"archived"`
	Private          bool      `json:"private"`
	MessageCount     int       `json:"messageCount"`
	UserIDs          []int64   `json:"userIds"`
	Created          time.Time `json:"created"`
	LastActive       time.Time `json:"lastActive"`
	LastObjIndex     int       `json:"lastObjIndex"`
	LastMessageTitle string    `json:"lastMessageTitle"`
}

// ConversationMessage is one message in a conversation.
type ConversationMessage struct {
	ID             int64     `json:"id" validate:"required"`
	Content        string    `json:"content"`
	ConversationID int64     `json:"conversationId" validate:"required"`
	WorkspaceID    int64     `json:"workspaceId"`
	Creator        int64     `json:"creator"`
	ObjIndex       int       `json:"objIndex"`
	Posted         time.Time `json:"posted"`
}

// ReactionSet maps an emoji to the IDs of the users who reacted with it.
type ReactionSet map[string][]int64

// SearchItem is one search hit.
type SearchItem struct {
	ID             string    `json:"id" validate:"required"`
	Type           string    `json:"type" validate:"required,oneof=thread comment message"`
	Snippet        string    `json:"snippet"`
	Title          string    `json:"title"`
	ThreadID       int64     `json:"threadId"`
	CommentID      int64     `json:"commentId"`
	ChannelID      int64     `json:"channelId"`
	ConversationID int64     `json:"conversationId"`
	MessageID      int64     `json:"messageId"`
	Creator        int64     `json:"creator"`
	Posted         time.Time `json:"posted"`
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Items          []SearchItem `json:"items" validate:"dive"`
	HasMore        bool         `json:"hasMore"`
	NextCursorMark string       `json:"nextCursorMark"`
}

// InboxThread is a thread as listed in the inbox.
type InboxThread struct {
	Thread
	IsUnread     bool `json:"isUnread"`
	InInbox      bool `json:"inInbox"`
	LastObjIndex int  `json:"lastObjIndex"`
}
