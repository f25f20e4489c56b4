package schema_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/soft-issues/pkg/db/schema"
	"github.com/charmbracelet/soft-issues/pkg/test"
	"github.com/matryer/is"
)

func TestCreateIsIdempotent(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	is.NoErr(schema.Create(ctx, dbx))
	is.NoErr(schema.Create(ctx, dbx))

	var names []string
	is.NoErr(dbx.SelectContext(ctx, &names, `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name IN ('users', 'issues', 'issues_fts')
		ORDER BY name;`))
	is.Equal(names, []string{"issues", "issues_fts", "users"})
}
