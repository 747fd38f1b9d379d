package memberships

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelinsk/teamspace/internal/common"
	"github.com/avelinsk/teamspace/internal/dbx"
	"github.com/avelinsk/teamspace/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Membership) (*models.Membership, error) {
	query := `
		INSERT INTO memberships (org_id, user_id, role, invited_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		m.OrgID, m.UserID, m.Role, m.InvitedBy).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) GetRole(ctx context.Context, orgID, userID int64) (models.Role, error) {
	query := `
		SELECT role FROM memberships
		WHERE org_id = $1 AND user_id = $2 AND deleted_at IS NULL
	`
	var role models.Role
	err := r.db.QueryRowContext(ctx, query, orgID, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return role, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, orgID int64) ([]models.Member, error) {
	query := `
		SELECT u.id, u.name, u.email, m.role, m.id
		FROM users u
		JOIN memberships m ON u.id = m.user_id
		WHERE m.org_id = $1 AND m.deleted_at IS NULL AND u.deleted_at IS NULL
		ORDER BY m.id
	`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.MembershipID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return members, nil
}

func (r *PostgresRepository) CountAdmins(ctx context.Context, orgID int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM memberships
		WHERE org_id = $1 AND role = 'admin' AND deleted_at IS NULL
	`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, orgID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, orgID, userID int64, role models.Role, at time.Time) error {
	query := `
		UPDATE memberships SET role = $3, updated_at = $4
		WHERE org_id = $1 AND user_id = $2 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, orgID, userID, role, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, orgID, userID int64, at time.Time) error {
	query := `
		UPDATE memberships SET deleted_at = $3
		WHERE org_id = $1 AND user_id = $2 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, orgID, userID, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
