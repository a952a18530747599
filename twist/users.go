package twist

import (
	"context"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Users reads user profiles.
type Users struct {
	s request.Session
}

// DescribeGetSessionUser describes GetSessionUser without sending it.
func (u *Users) DescribeGetSessionUser() request.Descriptor[User] {
	return get[User](v3+"users/get_session_user", nil, nil)
}

// GetSessionUser returns the user the token belongs to.
func (u *Users) GetSessionUser(ctx context.Context) (User, error) {
	return request.Do(ctx, u.s, u.DescribeGetSessionUser())
}

// DescribeGetUser describes GetUser without sending it.
func (u *Users) DescribeGetUser(workspaceID, userID int64) request.Descriptor[User] {
	v := validation.New().
		Positive("workspaceId", workspaceID).
		Positive("id", userID)
	return get[User](v3+"workspace_users/getone", request.Params{
		"workspaceId": workspaceID,
		"id":          userID,
	}, v)
}

// GetUser returns a member of a workspace.
func (u *Users) GetUser(ctx context.Context, workspaceID, userID int64) (User, error) {
	return request.Do(ctx, u.s, u.DescribeGetUser(workspaceID, userID))
}
