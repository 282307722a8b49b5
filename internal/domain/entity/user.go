// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate against the API.
type User struct {
	ID           uuid.UUID // Assigned by the store on creation.
	Email        string    // Login identifier, always stored normalized (see NormalizeEmail).
	PasswordHash string    // bcrypt output. Never leaves the service layer.
	FullName     string    // Display name, not unique.
	Role         Role      // RoleUser unless elevated by a trusted caller.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WithoutPasswordHash returns a copy of the user that is safe to hand to callers.
func (u *User) WithoutPasswordHash() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""

	return &clone
}

// NormalizeEmail trims and lower-cases an email address.
// Emails are compared case-insensitively everywhere in the system.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
