package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelinsk/teamspace/internal/common"
	"github.com/avelinsk/teamspace/internal/logging"
	"github.com/avelinsk/teamspace/internal/server/models"
	"github.com/avelinsk/teamspace/internal/server/repositories/repomanager"
)

// DocumentService creates and deletes documents, enforcing workspace and
// organization ownership on every operation.
type DocumentService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *DocumentService {
	return &DocumentService{db: db, repos: repos, logger: logger.With("module", "documents")}
}

// CreateDocumentInput is the input for DocumentService.Create.
type CreateDocumentInput struct {
	OrgID       int64
	UserID      int64
	WorkspaceID int64
	ParentID    *int64
	Name        string
	Title       string
	Content     string
}

// Create inserts a document after checking that the workspace (and parent
// document, when given) belong to the caller's organization. A blank name
// gets a generated default.
func (s *DocumentService) Create(ctx context.Context, in CreateDocumentInput) (*models.Document, error) {
	if err := validateDocument(in.Name, in.Title, in.Content); err != nil {
		return nil, err
	}
	if err := s.checkWorkspace(ctx, in.WorkspaceID, in.OrgID); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		parent, err := s.repos.Documents(s.db).Get(ctx, *in.ParentID, in.WorkspaceID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorForbidden
			}
			return nil, err
		}
		if parent.OrgID != in.OrgID {
			return nil, common.ErrorForbidden
		}
	}

	name := in.Name
	if name == "" {
		suffix, err := common.MakeRandHexString(4)
		if err != nil {
			return nil, fmt.Errorf("generating document name: %w", common.ErrorInternal)
		}
		name = "Untitled Document " + suffix
	}

	doc, err := s.repos.Documents(s.db).Create(ctx, &models.Document{
		Name:        name,
		Title:       in.Title,
		Content:     in.Content,
		OrgID:       in.OrgID,
		WorkspaceID: in.WorkspaceID,
		ParentID:    in.ParentID,
		CreatedBy:   in.UserID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "document created",
		"document_id", doc.ID, "workspace_id", in.WorkspaceID, "org_id", in.OrgID, "user_id", in.UserID)
	return doc, nil
}

// Delete removes a document. Members may only delete documents they created;
// leads and admins may delete any document in their organization.
func (s *DocumentService) Delete(ctx context.Context, orgID, userID int64, role models.Role, workspaceID, docID int64) error {
	if err := s.checkWorkspace(ctx, workspaceID, orgID); err != nil {
		return err
	}

	doc, err := s.repos.Documents(s.db).Get(ctx, docID, workspaceID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorForbidden
		}
		return err
	}
	if doc.OrgID != orgID {
		return common.ErrorForbidden
	}
	if role == models.RoleMember && doc.CreatedBy != userID {
		return common.ErrorForbidden
	}

	if err := s.repos.Documents(s.db).Delete(ctx, docID, workspaceID); err != nil {
		return err
	}

	s.logger.Info(ctx, "document deleted",
		"document_id", docID, "workspace_id", workspaceID, "org_id", orgID, "user_id", userID)
	return nil
}

func (s *DocumentService) checkWorkspace(ctx context.Context, workspaceID, orgID int64) error {
	wsOrg, err := s.repos.Workspaces(s.db).GetOrgID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorForbidden
		}
		return err
	}
	if wsOrg != orgID {
		return common.ErrorForbidden
	}
	return nil
}
