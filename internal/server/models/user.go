// Package models holds the persistence-level data structures shared by
// repositories and services.
package models

import "time"

// User is an account identity. Email is stored lowercase and is unique.
// PasswordHash is opaque to everything except the password package and must
// never be logged or serialized into a response.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
