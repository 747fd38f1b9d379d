package models

import "time"

// Workspace groups documents inside an organization. Names are unique per
// organization.
type Workspace struct {
	ID        int64
	Name      string
	OrgID     int64
	CreatedBy int64
	CreatedAt time.Time
}
