// Package documents declares the repository contract for documents.
package documents

import (
	"context"

	"github.com/avelinsk/teamspace/internal/server/models"
)

// Repository defines persistence operations for documents.
type Repository interface {
	// Create inserts a document. Duplicate names inside a workspace yield
	// common.ErrorAlreadyExists; a dangling parent reference yields
	// common.ErrInvalidParent.
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)

	// Get returns the document with the given id inside the workspace, or
	// common.ErrorNotFound.
	Get(ctx context.Context, docID, workspaceID int64) (*models.Document, error)

	// Delete removes a document. A document that still has children yields
	// common.ErrDocumentHasChildren; an absent one common.ErrorNotFound.
	Delete(ctx context.Context, docID, workspaceID int64) error
}
