package models

import "time"

// RefreshToken is one row of the refresh-token ledger. Only the SHA-256 hash
// of the secret handed to the client is stored; the raw secret never touches
// the database.
//
// RevokedAt is set exactly once: on normal rotation (the row was superseded
// by its successor) or on theft containment (the whole family was revoked).
// Rows are never deleted, so the ledger keeps the full rotation chain per
// user.
type RefreshToken struct {
	ID        string
	UserID    int64
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Revoked reports whether the row has left the accepting state.
func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}
