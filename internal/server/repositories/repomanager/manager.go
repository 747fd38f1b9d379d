// Package repomanager vends repository implementations bound to an arbitrary
// DBTX, so services can run the same repository code on the pool or inside a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avelinsk/teamspace/internal/dbx"
	"github.com/avelinsk/teamspace/internal/server/repositories/documents"
	"github.com/avelinsk/teamspace/internal/server/repositories/memberships"
	"github.com/avelinsk/teamspace/internal/server/repositories/orgs"
	"github.com/avelinsk/teamspace/internal/server/repositories/refreshtokens"
	"github.com/avelinsk/teamspace/internal/server/repositories/users"
	"github.com/avelinsk/teamspace/internal/server/repositories/workspaces"
)

// RepositoryManager vends repositories bound to the given DBTX and exposes a
// schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Orgs(db dbx.DBTX) orgs.Repository
	Memberships(db dbx.DBTX) memberships.Repository
	Workspaces(db dbx.DBTX) workspaces.Repository
	Documents(db dbx.DBTX) documents.Repository
}
