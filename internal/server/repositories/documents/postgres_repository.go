package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query := `
		INSERT INTO documents (name, title, content, org_id, workspace_id, parent_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		doc.Name, doc.Title, doc.Content, doc.OrgID,
		doc.WorkspaceID, doc.ParentID, doc.CreatedBy).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrInvalidParent
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) Get(ctx context.Context, docID, workspaceID int64) (*models.Document, error) {
	query := `
		SELECT id, name, title, content, org_id, workspace_id, parent_id, created_by, created_at
		FROM documents
		WHERE id = $1 AND workspace_id = $2
	`
	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, docID, workspaceID).Scan(
		&doc.ID, &doc.Name, &doc.Title, &doc.Content, &doc.OrgID,
		&doc.WorkspaceID, &doc.ParentID, &doc.CreatedBy, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, docID, workspaceID int64) error {
	query := `DELETE FROM documents WHERE id = $1 AND workspace_id = $2`
	res, err := r.db.ExecContext(ctx, query, docID, workspaceID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrDocumentHasChildren
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
