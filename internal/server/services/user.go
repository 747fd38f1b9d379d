// Package services contains the server-side business logic. This file
// implements UserService: the authentication gateway (sign-up, login,
// logout) and the session-rotation engine behind refresh.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelinsk/teamspace/internal/common"
	"github.com/avelinsk/teamspace/internal/dbx"
	"github.com/avelinsk/teamspace/internal/logging"
	"github.com/avelinsk/teamspace/internal/server/auth"
	"github.com/avelinsk/teamspace/internal/server/config"
	"github.com/avelinsk/teamspace/internal/server/models"
	"github.com/avelinsk/teamspace/internal/server/password"
	"github.com/avelinsk/teamspace/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token with the raw refresh secret
// whose hash was just appended to the ledger.
type TokenPair struct {
	AccessToken   string
	RefreshSecret string
}

// UserService provides authentication operations:
//   - SignUp: create users
//   - Login: verify credentials and mint a token pair
//   - Rotate: exchange a refresh secret for a new pair, detecting reuse
//   - Logout: retire the presented refresh chain member
type UserService struct {
	db          *sql.DB
	repos       repomanager.RepositoryManager
	hasher      *password.Hasher
	logger      logging.Logger
	jwtSecret   []byte
	accessTTL   time.Duration
	refreshTTL  time.Duration
	now         func() time.Time
	dummyDigest string
}

// UserServiceOption modifies a UserService.
type UserServiceOption func(*UserService)

// WithNow overrides the clock (for tests).
func WithNow(now func() time.Time) UserServiceOption {
	return func(s *UserService) { s.now = now }
}

// NewUserService constructs a UserService from repositories and server config.
func NewUserService(db *sql.DB, repos repomanager.RepositoryManager, hasher *password.Hasher,
	logger logging.Logger, cfg *config.Config, options ...UserServiceOption) *UserService {

	s := &UserService{
		db:         db,
		repos:      repos,
		hasher:     hasher,
		logger:     logger.With("module", "users"),
		jwtSecret:  []byte(cfg.SecretKey),
		accessTTL:  cfg.AccessTokenValidityDuration,
		refreshTTL: cfg.RefreshTokenValidityDuration,
		now:        time.Now,
	}

	// A digest verified against when the email is unknown, so login latency
	// does not reveal account existence.
	if dummy, err := hasher.Hash(uuid.NewString()); err == nil {
		s.dummyDigest = dummy
	}

	for _, opt := range options {
		opt(s)
	}
	return s
}

// SignUp validates the input, hashes the password, and creates the user.
// The returned user never carries the password hash.
func (s *UserService) SignUp(ctx context.Context, name, email, plainPassword string) (*models.User, error) {
	if err := validateSignUp(name, email, plainPassword); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)

	digest, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", common.ErrorInternal)
	}

	user, err := s.repos.Users(s.db).Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	user.PasswordHash = ""
	return user, nil
}

// Login verifies the credentials and, on success, returns the user and a new
// token pair backed by a brand-new ledger chain. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, plainPassword string) (*models.User, *TokenPair, error) {
	email = NormalizeEmail(email)

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn the same hashing cost as a real verification.
			_, _ = s.hasher.Verify(plainPassword, s.dummyDigest)
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.issueTokens(ctx, user.ID, s.db, s.now().UTC())
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, pair, nil
}

// Rotate exchanges a presented refresh secret for a new token pair.
//
// Inside one transaction it locks the matching ledger row, then either:
//   - no unexpired row: unauthorized, rollback;
//   - row already revoked: reuse of a rotated-away secret, i.e. the secret
//     leaked. Every active session of that user is revoked, the revocation is
//     committed, and the caller still gets unauthorized;
//   - otherwise: the row is superseded and exactly one successor is inserted.
//
// The row lock serializes concurrent rotations of the same secret: the loser
// waits, then observes the revoked row and takes the reuse branch.
func (s *UserService) Rotate(ctx context.Context, presentedSecret string) (*TokenPair, error) {
	tokenHash := auth.HashRefreshSecret(presentedSecret)

	var (
		pair         *TokenPair
		reusedUserID int64
		revokedCount int64
		reuse        bool
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ledger := s.repos.RefreshTokens(tx)
		now := s.now().UTC()

		row, err := ledger.FindByHashForUpdate(ctx, tokenHash, now)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("locking ledger row: %w", err)
		}

		if row.Revoked() {
			n, err := ledger.RevokeAllForUser(ctx, row.UserID, now)
			if err != nil {
				return fmt.Errorf("revoking session family: %w", err)
			}
			reuse, reusedUserID, revokedCount = true, row.UserID, n
			return nil // commit the containment
		}

		if err := ledger.Revoke(ctx, row.ID, now); err != nil {
			return fmt.Errorf("superseding ledger row: %w", err)
		}
		pair, err = s.issueTokens(ctx, row.UserID, tx, now)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if reuse {
		s.logger.Warn(ctx, "refresh token reuse detected, revoked all active sessions",
			"user_id", reusedUserID, "revoked_sessions", revokedCount)
		return nil, common.ErrorUnauthorized
	}
	return pair, nil
}

// Logout revokes the chain member matching the presented secret. An unknown
// or expired secret yields common.ErrorUnauthorized.
func (s *UserService) Logout(ctx context.Context, presentedSecret string) error {
	tokenHash := auth.HashRefreshSecret(presentedSecret)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ledger := s.repos.RefreshTokens(tx)
		now := s.now().UTC()

		row, err := ledger.FindByHashForUpdate(ctx, tokenHash, now)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("locking ledger row: %w", err)
		}
		if row.Revoked() {
			return nil
		}
		return ledger.Revoke(ctx, row.ID, now)
	})
}

// VerifyAccess validates an access token and returns the subject user id.
// This is the verification capability consumed by the authorization
// middleware on every protected request.
func (s *UserService) VerifyAccess(tokenString string) (int64, error) {
	return auth.VerifyAccessToken(tokenString, s.jwtSecret)
}

func (s *UserService) issueTokens(ctx context.Context, userID int64, db dbx.DBTX, now time.Time) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(userID, s.jwtSecret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", common.ErrorInternal)
	}
	secret, err := auth.GenerateRefreshSecret()
	if err != nil {
		return nil, fmt.Errorf("generating refresh secret: %w", common.ErrorInternal)
	}

	record := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: auth.HashRefreshSecret(secret),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if err := s.repos.RefreshTokens(db).Create(ctx, record); err != nil {
		return nil, fmt.Errorf("appending ledger row: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshSecret: secret}, nil
}
