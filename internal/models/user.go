package models

import "time"

// User is the account entity persisted in the users table. SecurityStamp and
// ConcurrencyStamp are opaque to the stores; they are persisted and returned
// verbatim for the authentication framework to interpret.
type User struct {
	ID                   string
	UserName             string
	NormalizedUserName   string
	Email                string
	NormalizedEmail      string
	EmailConfirmed       bool
	PasswordHash         string
	SecurityStamp        string
	ConcurrencyStamp     string
	PhoneNumber          string
	PhoneNumberConfirmed bool
	TwoFactorEnabled     bool
	LockoutEnd           *time.Time
	LockoutEnabled       bool
	AccessFailedCount    int
}
