package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avelinsk/teamspace/internal/common"
	"github.com/avelinsk/teamspace/internal/dbx"
	"github.com/avelinsk/teamspace/internal/logging"
	"github.com/avelinsk/teamspace/internal/server/models"
	"github.com/avelinsk/teamspace/internal/server/repositories/repomanager"
)

// MembershipService manages organization memberships and enforces the
// at-least-one-admin rule.
type MembershipService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewMembershipService constructs a MembershipService.
func NewMembershipService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *MembershipService {
	return &MembershipService{db: db, repos: repos, logger: logger.With("module", "memberships")}
}

// Role returns the caller's active role inside the organization. Used by the
// authorization middleware on every org-scoped request.
func (s *MembershipService) Role(ctx context.Context, orgID, userID int64) (models.Role, error) {
	return s.repos.Memberships(s.db).GetRole(ctx, orgID, userID)
}

// List returns the active members of the organization.
func (s *MembershipService) List(ctx context.Context, orgID int64) ([]models.Member, error) {
	return s.repos.Memberships(s.db).ListMembers(ctx, orgID)
}

// Invite adds memberUserID to the organization with the given role. Only
// admins may invite.
func (s *MembershipService) Invite(ctx context.Context, orgID, actorID int64, actorRole models.Role,
	memberUserID int64, role models.Role) (*models.Membership, error) {

	if actorRole != models.RoleAdmin {
		return nil, common.ErrorForbidden
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	m, err := s.repos.Memberships(s.db).Create(ctx, &models.Membership{
		OrgID:     orgID,
		UserID:    memberUserID,
		Role:      role,
		InvitedBy: &actorID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "member invited",
		"org_id", orgID, "user_id", memberUserID, "role", role, "invited_by", actorID)
	return m, nil
}

// UpdateRole changes a member's role. Demoting the last remaining admin is
// rejected; the existence check, admin count, and update run in one
// transaction so concurrent demotions cannot race past the rule.
func (s *MembershipService) UpdateRole(ctx context.Context, orgID int64, actorRole models.Role,
	memberUserID int64, newRole models.Role) error {

	if actorRole != models.RoleAdmin {
		return common.ErrorForbidden
	}
	if err := validateRole(newRole); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Memberships(tx)

		if newRole != models.RoleAdmin {
			if err := s.guardLastAdmin(ctx, repo, orgID, memberUserID); err != nil {
				return err
			}
		}
		return repo.UpdateRole(ctx, orgID, memberUserID, newRole, s.nowUTC())
	})
}

// Remove soft-deletes a membership. Removing the last remaining admin is
// rejected.
func (s *MembershipService) Remove(ctx context.Context, orgID int64, actorRole models.Role, memberUserID int64) error {
	if actorRole != models.RoleAdmin {
		return common.ErrorForbidden
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Memberships(tx)

		if err := s.guardLastAdmin(ctx, repo, orgID, memberUserID); err != nil {
			return err
		}
		return repo.SoftDelete(ctx, orgID, memberUserID, s.nowUTC())
	})
}

// guardLastAdmin fails with ErrLastAdmin when memberUserID is the only
// remaining admin of the organization. It also surfaces ErrorNotFound for
// members that do not exist.
func (s *MembershipService) guardLastAdmin(ctx context.Context, repo membershipRepo, orgID, memberUserID int64) error {
	role, err := repo.GetRole(ctx, orgID, memberUserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return err
	}
	if role != models.RoleAdmin {
		return nil
	}
	admins, err := repo.CountAdmins(ctx, orgID)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return common.ErrLastAdmin
	}
	return nil
}

// membershipRepo is the subset of the memberships repository used by the
// last-admin guard.
type membershipRepo interface {
	GetRole(ctx context.Context, orgID, userID int64) (models.Role, error)
	CountAdmins(ctx context.Context, orgID int64) (int64, error)
}

func (s *MembershipService) nowUTC() time.Time {
	return time.Now().UTC()
}
