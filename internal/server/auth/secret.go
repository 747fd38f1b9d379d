package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/avelinsk/teamspace/internal/common"
)

// refreshSecretBytes is the entropy of a refresh secret (hex-encoded to
// double the length on the wire).
const refreshSecretBytes = 32

// GenerateRefreshSecret returns a fresh random refresh secret. The raw value
// goes to the client; only its hash is stored.
func GenerateRefreshSecret() (string, error) {
	return common.MakeRandHexString(refreshSecretBytes)
}

// HashRefreshSecret computes the deterministic ledger hash of a refresh
// secret. Unlike password hashing this is fast and unsalted: the hash is the
// lookup key for the ledger row.
func HashRefreshSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
