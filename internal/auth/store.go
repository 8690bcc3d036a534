package auth

import "context"

// CredentialStore persists identity records. Records are created at signup
// and read at login; the core never updates or deletes them.
type CredentialStore interface {
	// FindByEmail returns the record whose email matches, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByEmailOrUsername returns a record whose email or username matches
	// either argument, or ErrNotFound. Used for the signup uniqueness
	// pre-check.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error)

	// Create persists a new record, assigning an ID when absent. A store-level
	// uniqueness violation is reported as ErrDuplicate; this, not the
	// pre-check, is the authoritative duplicate signal under concurrency.
	Create(ctx context.Context, u *User) error
}
