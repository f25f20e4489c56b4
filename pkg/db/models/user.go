package models

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

// User represents a user.
type User struct {
	ID                   uuid.UUID      `db:"id" json:"id"`
	Username             string         `db:"username" json:"username"`
	EmailAddress         string         `db:"email_address" json:"email_address"`
	GravatarEmailAddress string         `db:"gravatar_email_address" json:"gravatar_email_address"`
	AccountVerified      bool           `db:"account_verified" json:"account_verified"`
	PasswordHash         string         `db:"password_hash" json:"-"`
	Biography            sql.NullString `db:"biography" json:"biography"`
}

// user has the fields of User without its JSON methods.
type user User

type userJSON struct {
	user
	Biography *string `json:"biography"`
}

// MarshalJSON encodes the biography as a string, or null when absent.
func (u User) MarshalJSON() ([]byte, error) {
	v := userJSON{user: user(u)}
	if u.Biography.Valid {
		v.Biography = &u.Biography.String
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *User) UnmarshalJSON(b []byte) error {
	var v userJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*u = User(v.user)
	u.Biography = sql.NullString{}
	if v.Biography != nil {
		u.Biography = sql.NullString{String: *v.Biography, Valid: true}
	}
	return nil
}
