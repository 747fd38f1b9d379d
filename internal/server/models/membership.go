package models

import "time"

// Role is a membership role within an organization.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLead   Role = "lead"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLead, RoleMember:
		return true
	}
	return false
}

// Membership ties a user to an organization with a role. Removal is a soft
// delete (DeletedAt set), keeping an audit trail.
type Membership struct {
	ID        int64
	OrgID     int64
	UserID    int64
	Role      Role
	InvitedBy *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member is the membership listing projection (user identity plus role).
type Member struct {
	UserID       int64
	Name         string
	Email        string
	Role         Role
	MembershipID int64
}
