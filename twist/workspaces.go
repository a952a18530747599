package twist

import (
	"context"

	"github.com/kbukum/twistkit/request"
	"github.com/kbukum/twistkit/validation"
)

// Workspaces reads workspaces.
type Workspaces struct {
	s request.Session
}

// DescribeGetWorkspaces describes listing the session user's workspaces.
func (w *Workspaces) DescribeGetWorkspaces() request.Descriptor[[]Workspace] {
	return get[[]Workspace](v3+"workspaces/get", nil, nil)
}

// GetWorkspaces lists the session user's workspaces.
func (w *Workspaces) GetWorkspaces(ctx context.Context) ([]Workspace, error) {
	return request.Do(ctx, w.s, w.DescribeGetWorkspaces())
}

// DescribeGetWorkspace describes fetching one workspace.
func (w *Workspaces) DescribeGetWorkspace(id int64) request.Descriptor[Workspace] {
	v := validation.New().Positive("id", id)
	return get[Workspace](v3+"workspaces/getone", request.Params{"id": id}, v)
}

// GetWorkspace fetches one workspace.
func (w *Workspaces) GetWorkspace(ctx context.Context, id int64) (Workspace, error) {
	return request.Do(ctx, w.s, w.DescribeGetWorkspace(id))
}

// DescribeGetDefaultWorkspace describes fetching the default workspace.
func (w *Workspaces) DescribeGetDefaultWorkspace() request.Descriptor[Workspace] {
	return get[Workspace](v3+"workspaces/get_default", nil, nil)
}

// GetDefaultWorkspace fetches the session user's default workspace.
func (w *Workspaces) GetDefaultWorkspace(ctx context.Context) (Workspace, error) {
	return request.Do(ctx, w.s, w.DescribeGetDefaultWorkspace())
}
