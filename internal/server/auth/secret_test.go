package auth

import (
	"encoding/hex"
	"testing"
)

func TestGenerateRefreshSecret(t *testing.T) {
	t.Parallel()

	a, err := GenerateRefreshSecret()
	if err != nil {
		t.Fatalf("GenerateRefreshSecret error: %v", err)
	}
	if len(a) != refreshSecretBytes*2 {
		t.Fatalf("unexpected secret length: %d", len(a))
	}
	if _, err := hex.DecodeString(a); err != nil {
		t.Fatalf("secret is not hex: %v", err)
	}

	b, err := GenerateRefreshSecret()
	if err != nil {
		t.Fatalf("GenerateRefreshSecret error: %v", err)
	}
	if a == b {
		t.Fatalf("two secrets are identical")
	}
}

func TestHashRefreshSecret_DeterministicAndDistinct(t *testing.T) {
	t.Parallel()

	h1 := HashRefreshSecret("secret-1")
	h2 := HashRefreshSecret("secret-1")
	if h1 != h2 {
		t.Fatalf("hash must be deterministic: %q vs %q", h1, h2)
	}
	if h1 == HashRefreshSecret("secret-2") {
		t.Fatalf("different secrets must not collide")
	}
	if h1 == "secret-1" {
		t.Fatalf("hash must not equal the raw secret")
	}
	if len(h1) != 64 {
		t.Fatalf("unexpected hash length: %d", len(h1))
	}
}
