// Package memberships declares the repository contract for organization
// memberships. Membership removal is a soft delete; all queries filter on
// deleted_at IS NULL.
package memberships

import (
	"context"
	"time"

	"github.com/avelinsk/teamspace/internal/server/models"
)

// Repository defines persistence operations for memberships.
type Repository interface {
	// Create inserts a membership. A user already belonging to the
	// organization yields common.ErrorAlreadyExists.
	Create(ctx context.Context, m *models.Membership) (*models.Membership, error)

	// GetRole returns the active role of userID inside orgID, or
	// common.ErrorNotFound.
	GetRole(ctx context.Context, orgID, userID int64) (models.Role, error)

	// ListMembers returns all active members of the organization joined with
	// their user identity.
	ListMembers(ctx context.Context, orgID int64) ([]models.Member, error)

	// CountAdmins returns the number of active admin memberships in orgID.
	CountAdmins(ctx context.Context, orgID int64) (int64, error)

	// UpdateRole changes the active membership of userID in orgID to role.
	// No active membership yields common.ErrorNotFound.
	UpdateRole(ctx context.Context, orgID, userID int64, role models.Role, at time.Time) error

	// SoftDelete marks the active membership of userID in orgID deleted.
	// No active membership yields common.ErrorNotFound.
	SoftDelete(ctx context.Context, orgID, userID int64, at time.Time) error
}
