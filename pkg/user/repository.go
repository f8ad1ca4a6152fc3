package user

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail is reported by adapters when the store's unique index on
	// email rejects a write.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository abstracts persistence of users.
// Lookups return ErrNotFound when no row matches; email comparison is exact.
type Repository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	// Create stores u and returns it with the store-assigned ID.
	Create(ctx context.Context, u User) (User, error)
	// Update replaces every column of the row identified by u.ID.
	Update(ctx context.Context, u User) error
	// Delete removes the row; a missing row is not an error.
	Delete(ctx context.Context, id int64) error
}
