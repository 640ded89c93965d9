// Package models defines the core data structures for users, sessions and mouthpieces.
package models

import "time"

// User represents an account of the record service.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// FirstName and LastName form the display name.
	FirstName string
	LastName  string
	// Email is the login name of the user.
	Email string
	// PasswordHash is the hashed password of the user.
	PasswordHash []byte
	// Status is the account status ("active" for every account this app creates).
	Status string
	// Role is the application role assigned to the account.
	Role string
}

// NewUser carries the fields collected when an account is created.
type NewUser struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required"`
	Status    string
	Role      string
}

// Session is a server-side login session identified by its token.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

const (
	// StatusActive is the only status assigned to created accounts.
	StatusActive = "active"
	// DefaultRole is the application's single role.
	DefaultRole = "Mouthpiecer"
)
