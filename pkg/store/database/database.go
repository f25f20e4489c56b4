// Package database implements store.Store on top of a SQL database.
package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-issues/pkg/store"
)

type datastore struct {
	logger *log.Logger

	*userStore
	*issueStore
}

// New returns a new store.Store database.
func New(ctx context.Context) store.Store {
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		logger: logger,

		userStore:  &userStore{},
		issueStore: &issueStore{logger: logger},
	}

	return s
}
