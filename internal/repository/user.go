package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/model"
)

// UserUpdate holds the mutable user fields for a partial update; nil fields
// are left untouched.
type UserUpdate struct {
	FullName *string
	Email    *string
	Password *string
	Role     *string
}

// UserRepository defines persistence operations over user accounts.
type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as ErrDuplicate.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByEmail returns the user with the given email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns the user with the given id hex, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByIDs returns the users matching any of the given ids. Missing ids
	// are skipped, not an error.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)

	// List returns all users ordered by creation time descending.
	List(ctx context.Context) ([]model.User, error)

	// UpdateByID applies a partial update and returns the updated user, or
	// ErrNotFound if the id does not resolve.
	UpdateByID(ctx context.Context, id string, upd UserUpdate) (*model.User, error)
}
