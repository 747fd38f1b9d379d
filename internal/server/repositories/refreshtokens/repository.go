// Package refreshtokens provides the refresh-token ledger: an append-and-mark
// table of issued refresh-token hashes. Rows are revoked, never deleted, so
// every rotation chain stays auditable.
package refreshtokens

import (
	"context"
	"time"

	"github.com/avelinsk/teamspace/internal/server/models"
)

// Repository defines ledger operations. FindByHashForUpdate and the revoke
// operations are meant to run on a transaction-bound instance; the row lock
// taken by FindByHashForUpdate is what serializes concurrent rotations of the
// same token.
type Repository interface {
	// Create appends a new ledger row.
	Create(ctx context.Context, token *models.RefreshToken) error

	// FindByHashForUpdate selects the unexpired row matching tokenHash and
	// locks it exclusively for the duration of the surrounding transaction.
	// Expired or unknown hashes yield common.ErrorNotFound. Revoked rows ARE
	// returned; detecting reuse is the caller's job.
	FindByHashForUpdate(ctx context.Context, tokenHash string, now time.Time) (*models.RefreshToken, error)

	// Revoke marks a single row revoked at the given time. Rows already
	// revoked are left untouched.
	Revoke(ctx context.Context, id string, at time.Time) error

	// RevokeAllForUser marks every non-revoked row of the user revoked and
	// returns how many rows were affected.
	RevokeAllForUser(ctx context.Context, userID int64, at time.Time) (int64, error)
}
