package models

import (
	"time"

	"github.com/google/uuid"
)

// Issue represents an issue.
type Issue struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	Title          string        `db:"title" json:"title"`
	Description    string        `db:"description" json:"description"`
	AuthorID       uuid.UUID     `db:"author_id" json:"author_id"`
	AssignedUserID uuid.NullUUID `db:"assigned_user_id" json:"assigned_user_id"`
	Priority       Priority      `db:"priority" json:"priority"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
	IsClosed       bool          `db:"is_closed" json:"is_closed"`
}
