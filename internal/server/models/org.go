package models

import "time"

// Organization is the tenant root. Name and slug are unique.
type Organization struct {
	ID        int64
	Name      string
	Slug      string
	CreatedBy int64
	CreatedAt time.Time
}
