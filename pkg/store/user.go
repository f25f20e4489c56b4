package store

import (
	"context"

	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/models"
	"github.com/google/uuid"
)

// UserStore is an interface for managing users.
type UserStore interface {
	// InsertUser inserts a single user. Inserting an existing ID fails
	// with db.ErrDuplicateKey.
	InsertUser(ctx context.Context, h db.Handler, user models.User) error
	// TryFindUserByID returns the user with the given ID. The boolean is
	// false, and the error nil, when no such user exists.
	TryFindUserByID(ctx context.Context, h db.Handler, id uuid.UUID) (models.User, bool, error)
}
