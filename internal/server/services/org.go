package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelinsk/teamspace/internal/dbx"
	"github.com/avelinsk/teamspace/internal/logging"
	"github.com/avelinsk/teamspace/internal/server/models"
	"github.com/avelinsk/teamspace/internal/server/repositories/repomanager"
)

// OrgService creates organizations.
type OrgService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewOrgService constructs an OrgService.
func NewOrgService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *OrgService {
	return &OrgService{db: db, repos: repos, logger: logger.With("module", "orgs")}
}

// Create inserts the organization and its founding admin membership in one
// transaction, so an organization can never exist without an admin.
func (s *OrgService) Create(ctx context.Context, userID int64, name, slug string) (*models.Organization, error) {
	if err := validateOrg(name, slug); err != nil {
		return nil, err
	}

	var org *models.Organization
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		org, err = s.repos.Orgs(tx).Create(ctx, &models.Organization{
			Name:      name,
			Slug:      slug,
			CreatedBy: userID,
		})
		if err != nil {
			return err
		}
		_, err = s.repos.Memberships(tx).Create(ctx, &models.Membership{
			OrgID:  org.ID,
			UserID: userID,
			Role:   models.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("creating founding membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "organization created", "org_id", org.ID, "user_id", userID)
	return org, nil
}
