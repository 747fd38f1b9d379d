// Package auth issues and verifies the two token kinds used by the
// authentication gateway: stateless HS256 access tokens and opaque refresh
// secrets tracked in the ledger by hash.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avelinsk/teamspace/internal/common"
)

// Claims carries the registered claim set; the user id travels in Subject.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateAccessToken mints a signed access token for userID valid for
// validityDuration. Possession of a validly signed, unexpired token is the
// sole proof of identity; nothing is persisted.
func GenerateAccessToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// VerifyAccessToken parses and validates tokenString and returns the subject
// user id. Malformed, badly signed, and expired tokens all collapse into
// common.ErrInvalidToken so callers cannot be used as an oracle.
func VerifyAccessToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	return userID, nil
}
