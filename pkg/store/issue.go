package store

import (
	"context"

	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/models"
	"github.com/google/uuid"
)

// IssueStore is an interface for managing issues.
type IssueStore interface {
	// InsertIssue inserts a single issue. Inserting an existing ID fails
	// with db.ErrDuplicateKey.
	InsertIssue(ctx context.Context, h db.Handler, issue models.Issue) error
	// FindIssueByID returns the issue with the given ID. The boolean is
	// false, and the error nil, when no such issue exists.
	FindIssueByID(ctx context.Context, h db.Handler, id uuid.UUID) (models.Issue, bool, error)
	// FindIssues returns one page of issues in the query's ordering.
	FindIssues(ctx context.Context, h db.Handler, q models.IssueQuery) ([]models.Issue, error)
	// SearchIssuesByTitle returns every issue whose title matches all the
	// words in query.
	SearchIssuesByTitle(ctx context.Context, h db.Handler, query string) ([]models.Issue, error)
}
