package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for accounts
type UserRepository interface {
	// Create inserts a new user; a duplicate username is reported as
	// ErrUsernameTaken
	Create(ctx context.Context, u *User) error

	// FindByID finds a user by id
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByRole lists users holding the given role
	FindByRole(ctx context.Context, role Role) ([]User, error)

	// Update persists changes to a user
	Update(ctx context.Context, u *User) error

	// Delete removes a user account
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByRole counts users holding the given role
	CountByRole(ctx context.Context, role Role) (int64, error)
}
