package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/models"
	"github.com/charmbracelet/soft-issues/pkg/store"
	"github.com/google/uuid"
)

const issueColumns = `id, title, description, author_id, assigned_user_id,
	priority, created_at, updated_at, is_closed`

type issueStore struct {
	logger *log.Logger
}

var _ store.IssueStore = (*issueStore)(nil)

// InsertIssue implements store.IssueStore.
func (*issueStore) InsertIssue(ctx context.Context, tx db.Handler, issue models.Issue) error {
	query := `INSERT INTO issues (` + issueColumns + `)
			VALUES (:id, :title, :description, :author_id, :assigned_user_id,
				:priority, :created_at, :updated_at, :is_closed);`
	_, err := tx.NamedExecContext(ctx, query, issue)
	return db.WrapError(err)
}

// FindIssueByID implements store.IssueStore.
func (*issueStore) FindIssueByID(ctx context.Context, tx db.Handler, id uuid.UUID) (models.Issue, bool, error) {
	var m models.Issue
	query := tx.Rebind(`SELECT ` + issueColumns + ` FROM issues WHERE id = ?;`)
	if err := tx.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Issue{}, false, nil
		}
		return models.Issue{}, false, db.WrapError(err)
	}
	return m, true, nil
}

// FindIssues implements store.IssueStore.
func (*issueStore) FindIssues(ctx context.Context, tx db.Handler, q models.IssueQuery) ([]models.Issue, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	// The column is one of a fixed set, never caller text.
	col, _ := q.Ordering.OrderColumn()
	query := tx.Rebind(fmt.Sprintf(`SELECT %s FROM issues
			ORDER BY %s DESC, id DESC
			LIMIT ? OFFSET ?;`, issueColumns, col))

	ms := []models.Issue{}
	err := tx.SelectContext(ctx, &ms, query, q.Limit(), q.Offset())
	if err != nil {
		return nil, db.WrapError(err)
	}
	return ms, nil
}

// SearchIssuesByTitle implements store.IssueStore.
func (s *issueStore) SearchIssuesByTitle(ctx context.Context, tx db.Handler, text string) ([]models.Issue, error) {
	ms := []models.Issue{}

	var query string
	var args []interface{}
	if db.IsPostgres(tx.DriverName()) {
		if strings.TrimSpace(text) == "" {
			return ms, nil
		}
		query = `SELECT ` + issueColumns + ` FROM issues
			WHERE to_tsvector('simple', title) @@ plainto_tsquery('simple', ?)
			ORDER BY ts_rank(to_tsvector('simple', title), plainto_tsquery('simple', ?)) DESC,
				created_at DESC, id DESC;`
		args = []interface{}{text, text}
	} else {
		match := ftsMatchExpr(text)
		if match == "" {
			if s.logger != nil {
				s.logger.Debug("no searchable words in query", "query", text)
			}
			return ms, nil
		}
		query = `SELECT ` + issueColumns + ` FROM issues
			WHERE rowid IN (SELECT rowid FROM issues_fts WHERE issues_fts MATCH ?)
			ORDER BY created_at DESC, id DESC;`
		args = []interface{}{match}
	}

	if err := tx.SelectContext(ctx, &ms, tx.Rebind(query), args...); err != nil {
		return nil, db.WrapError(err)
	}
	return ms, nil
}

// ftsMatchExpr turns free text into an FTS5 expression that requires every
// word. Each word is quoted so FTS5 operators in the text are taken
// literally.
func ftsMatchExpr(text string) string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
