package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelinsk/teamspace/internal/common"
	"github.com/avelinsk/teamspace/internal/logging"
	"github.com/avelinsk/teamspace/internal/server/models"
	"github.com/avelinsk/teamspace/internal/server/repositories/repomanager"
)

// WorkspaceService creates workspaces inside an organization.
type WorkspaceService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewWorkspaceService constructs a WorkspaceService.
func NewWorkspaceService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *WorkspaceService {
	return &WorkspaceService{db: db, repos: repos, logger: logger.With("module", "workspaces")}
}

// Create adds a workspace to the organization. Only admins may create
// workspaces; a blank name gets a generated default.
func (s *WorkspaceService) Create(ctx context.Context, orgID, userID int64, role models.Role, name string) (*models.Workspace, error) {
	if role != models.RoleAdmin {
		return nil, common.ErrorForbidden
	}
	if err := validateWorkspaceName(name); err != nil {
		return nil, err
	}
	if name == "" {
		suffix, err := common.MakeRandHexString(4)
		if err != nil {
			return nil, fmt.Errorf("generating workspace name: %w", common.ErrorInternal)
		}
		name = "Default Workspace " + suffix
	}

	ws, err := s.repos.Workspaces(s.db).Create(ctx, &models.Workspace{
		Name:      name,
		OrgID:     orgID,
		CreatedBy: userID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "workspace created", "workspace_id", ws.ID, "org_id", orgID, "user_id", userID)
	return ws, nil
}
