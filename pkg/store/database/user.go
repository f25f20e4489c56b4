package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/models"
	"github.com/charmbracelet/soft-issues/pkg/store"
	"github.com/google/uuid"
)

const userColumns = `id, username, email_address, gravatar_email_address,
	account_verified, password_hash, biography`

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// InsertUser implements store.UserStore.
func (*userStore) InsertUser(ctx context.Context, tx db.Handler, user models.User) error {
	query := `INSERT INTO users (` + userColumns + `)
			VALUES (:id, :username, :email_address, :gravatar_email_address,
				:account_verified, :password_hash, :biography);`
	_, err := tx.NamedExecContext(ctx, query, user)
	return db.WrapError(err)
}

// TryFindUserByID implements store.UserStore.
func (*userStore) TryFindUserByID(ctx context.Context, tx db.Handler, id uuid.UUID) (models.User, bool, error) {
	var m models.User
	query := tx.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?;`)
	if err := tx.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, false, nil
		}
		return models.User{}, false, db.WrapError(err)
	}
	return m, true, nil
}
