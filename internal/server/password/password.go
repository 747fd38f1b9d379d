// Package password implements one-way password hashing with argon2id.
//
// Digests are self-describing PHC strings of the form
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt-b64>$<key-b64>
//
// so the work factors used at hash time travel with the digest and Verify
// keeps working after the configured parameters change.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMalformedDigest is returned by Verify for digests this package did not
// produce.
var ErrMalformedDigest = errors.New("malformed password digest")

// Hasher hashes and verifies passwords with a fixed argon2id work factor,
// configured once at process start.
type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	saltLen uint32
	keyLen  uint32
}

// NewHasher returns a Hasher with the given argon2id parameters.
func NewHasher(time, memoryKiB uint32, threads uint8) *Hasher {
	return &Hasher{
		time:    time,
		memory:  memoryKiB,
		threads: threads,
		saltLen: 16,
		keyLen:  32,
	}
}

// NewDefaultHasher returns a Hasher with the RFC 9106 low-memory parameters
// (t=3, m=64 MiB, p=4).
func NewDefaultHasher() *Hasher {
	return NewHasher(3, 64*1024, 4)
}

// Hash derives an argon2id digest of plaintext with a fresh random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.time, h.memory, h.threads, h.keyLen)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify reports whether plaintext matches the digest. The key comparison is
// constant-time. A digest that does not parse yields ErrMalformedDigest.
func (h *Hasher) Verify(plaintext, digest string) (bool, error) {
	salt, key, time, memory, threads, err := decodeDigest(digest)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeDigest(digest string) (salt, key []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrMalformedDigest
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedDigest
	}

	b64 := base64.RawStdEncoding
	if salt, err = b64.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedDigest
	}
	if key, err = b64.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedDigest
	}
	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, 0, 0, 0, ErrMalformedDigest
	}
	return salt, key, time, memory, threads, nil
}
