// Package orgs declares the repository contract for organizations.
package orgs

import (
	"context"

	"github.com/avelinsk/teamspace/internal/server/models"
)

// Repository defines persistence operations for organizations.
type Repository interface {
	// Create inserts a new organization and returns it with ID and CreatedAt
	// filled in. A duplicate name or slug yields common.ErrorAlreadyExists.
	Create(ctx context.Context, org *models.Organization) (*models.Organization, error)
}
