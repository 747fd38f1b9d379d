package models

import "time"

// Document is a text document inside a workspace. ParentID allows nesting;
// a document with children cannot be deleted.
type Document struct {
	ID          int64
	Name        string
	Title       string
	Content     string
	OrgID       int64
	WorkspaceID int64
	ParentID    *int64
	CreatedBy   int64
	CreatedAt   time.Time
}
