package httpapi

import (
	"context"

	"github.com/avelinsk/teamspace/internal/server/models"
)

type contextKey int

const (
	userIDKey contextKey = iota
	orgIDKey
	orgRoleKey
)

func withUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user's id, as set by the auth
// middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func withOrg(ctx context.Context, orgID int64, role models.Role) context.Context {
	ctx = context.WithValue(ctx, orgIDKey, orgID)
	return context.WithValue(ctx, orgRoleKey, role)
}

// OrgFromContext returns the organization id and the caller's role inside it,
// as set by the org middleware.
func OrgFromContext(ctx context.Context) (int64, models.Role, bool) {
	orgID, ok := ctx.Value(orgIDKey).(int64)
	if !ok {
		return 0, "", false
	}
	role, ok := ctx.Value(orgRoleKey).(models.Role)
	return orgID, role, ok
}
