package auth

import "context"

// UserRepository defines persistence operations for identity records. Lookups
// return ErrUserNotFound when no record matches; absence is a valid outcome for
// callers to branch on.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
