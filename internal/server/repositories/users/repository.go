// Package users declares the server-side repository contract for user
// accounts.
package users

import (
	"context"

	"github.com/avelinsk/teamspace/internal/server/models"
)

// Repository defines persistence operations for users. Emails are expected
// to be normalized to lowercase by the caller before they reach this layer.
type Repository interface {
	// Create inserts a new user and returns it with ID and CreatedAt filled
	// in. A duplicate email yields common.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by (lowercase) email. Absent users yield
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
