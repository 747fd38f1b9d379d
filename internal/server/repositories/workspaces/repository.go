// Package workspaces declares the repository contract for workspaces.
package workspaces

import (
	"context"

	"github.com/avelinsk/teamspace/internal/server/models"
)

// Repository defines persistence operations for workspaces.
type Repository interface {
	// Create inserts a workspace. A duplicate name inside the organization
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, ws *models.Workspace) (*models.Workspace, error)

	// GetOrgID returns the owning organization of the workspace, or
	// common.ErrorNotFound.
	GetOrgID(ctx context.Context, workspaceID int64) (int64, error)
}
