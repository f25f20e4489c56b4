package database_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/models"
	"github.com/charmbracelet/soft-issues/pkg/store/database"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/matryer/is"
)

func openMock(t *testing.T, driverName string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mdb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
		mdb.Close() // nolint: errcheck
	})
	return sqlx.NewDb(mdb, driverName), mock
}

var issueRowColumns = []string{
	"id", "title", "description", "author_id", "assigned_user_id",
	"priority", "created_at", "updated_at", "is_closed",
}

func TestMockFindIssuesQuery(t *testing.T) {
	cases := []struct {
		driver string
		query  models.IssueQuery
		expect string
		args   []driver.Value
	}{
		{
			driver: "sqlmock",
			query:  models.IssueQuery{Ordering: models.Title, Page: 2, PageSize: 10},
			expect: `FROM issues ORDER BY title DESC, id DESC LIMIT \? OFFSET \?;`,
			args:   []driver.Value{10, 20},
		},
		{
			driver: "postgres",
			query:  models.IssueQuery{Ordering: models.HighestPriority, Page: 0, PageSize: 5},
			expect: `FROM issues ORDER BY priority DESC, id DESC LIMIT \$1 OFFSET \$2;`,
			args:   []driver.Value{5, 0},
		},
		{
			driver: "pgx",
			query:  models.IssueQuery{Ordering: models.RecentlyUpdated, Page: 1, PageSize: 4},
			expect: `FROM issues ORDER BY updated_at DESC, id DESC LIMIT \$1 OFFSET \$2;`,
			args:   []driver.Value{4, 4},
		},
		{
			driver: "sqlmock",
			query:  models.IssueQuery{Ordering: models.NoOrdering, PageSize: 1},
			expect: `ORDER BY created_at DESC, id DESC`,
			args:   []driver.Value{1, 0},
		},
	}

	for _, c := range cases {
		t.Run(c.driver+"/"+c.query.Ordering.String(), func(t *testing.T) {
			is := is.New(t)
			h, mock := openMock(t, c.driver)
			id := uuid.New()
			mock.ExpectQuery(c.expect).
				WithArgs(c.args...).
				WillReturnRows(sqlmock.NewRows(issueRowColumns).
					AddRow(id.String(), "t", "d", uuid.New().String(), nil, int64(2), epoch, epoch, false))

			ms, err := database.New(context.TODO()).FindIssues(context.TODO(), h, c.query)
			is.NoErr(err)
			is.Equal(len(ms), 1)
			is.Equal(ms[0].ID, id)
			is.Equal(ms[0].Priority, models.Medium)
			is.True(!ms[0].AssignedUserID.Valid)
		})
	}
}

func TestMockSearchIssuesPostgres(t *testing.T) {
	is := is.New(t)
	h, mock := openMock(t, "postgres")
	mock.ExpectQuery(`WHERE to_tsvector\('simple', title\) @@ plainto_tsquery\('simple', \$1\) ORDER BY ts_rank\(.*plainto_tsquery\('simple', \$2\)\) DESC`).
		WithArgs("crash startup", "crash startup").
		WillReturnRows(sqlmock.NewRows(issueRowColumns))

	ms, err := database.New(context.TODO()).SearchIssuesByTitle(context.TODO(), h, "crash startup")
	is.NoErr(err)
	is.True(ms != nil)
	is.Equal(len(ms), 0)
}

func TestMockSearchIssuesSqlite(t *testing.T) {
	is := is.New(t)
	h, mock := openMock(t, "sqlite")
	mock.ExpectQuery(`WHERE rowid IN \(SELECT rowid FROM issues_fts WHERE issues_fts MATCH \?\)`).
		WithArgs(`"crash" "NOT" "startup"`).
		WillReturnRows(sqlmock.NewRows(issueRowColumns))

	_, err := database.New(context.TODO()).SearchIssuesByTitle(context.TODO(), h, "crash NOT startup!")
	is.NoErr(err)
}

func TestMockInsertUserBindsNull(t *testing.T) {
	is := is.New(t)
	h, mock := openMock(t, "sqlmock")
	u := models.User{
		ID:                   uuid.New(),
		Username:             "alice",
		EmailAddress:         "alice@example.com",
		GravatarEmailAddress: "alice@example.com",
		PasswordHash:         "hash",
	}
	mock.ExpectExec(`INSERT INTO users \(id, username, email_address, gravatar_email_address, account_verified, password_hash, biography\) VALUES \(\?, \?, \?, \?, \?, \?, \?\);`).
		WithArgs(u.ID.String(), "alice", "alice@example.com", "alice@example.com", false, "hash", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	is.NoErr(database.New(context.TODO()).InsertUser(context.TODO(), h, u))
}

func TestMockInsertIssueBindsPriorityCode(t *testing.T) {
	is := is.New(t)
	h, mock := openMock(t, "postgres")
	issue := newIssue("Crash on startup", models.Urgent, 0)
	mock.ExpectExec(`INSERT INTO issues .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9\);`).
		WithArgs(issue.ID.String(), issue.Title, issue.Description, issue.AuthorID.String(),
			nil, int64(4), issue.CreatedAt, issue.UpdatedAt, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	is.NoErr(database.New(context.TODO()).InsertIssue(context.TODO(), h, issue))
}

func TestMockInsertIssueUniqueViolation(t *testing.T) {
	is := is.New(t)
	h, mock := openMock(t, "postgres")
	pqErr := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"issues_pkey\""}
	mock.ExpectExec(`INSERT INTO issues`).WillReturnError(pqErr)

	err := database.New(context.TODO()).InsertIssue(context.TODO(), h, newIssue("dup", models.Low, 0))
	is.True(errors.Is(err, db.ErrDuplicateKey))
	var got *pq.Error
	is.True(errors.As(err, &got))
	is.Equal(got.Code, pq.ErrorCode("23505"))
}

func TestMockFindErrorsSurface(t *testing.T) {
	is := is.New(t)
	h, mock := openMock(t, "sqlmock")
	connErr := errors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \?;`).WillReturnError(connErr)
	mock.ExpectQuery(`SELECT .* FROM issues WHERE id = \?;`).WillReturnError(sql.ErrConnDone)

	s := database.New(context.TODO())
	_, ok, err := s.TryFindUserByID(context.TODO(), h, uuid.New())
	is.True(!ok)
	is.True(errors.Is(err, connErr))

	_, ok, err = s.FindIssueByID(context.TODO(), h, uuid.New())
	is.True(!ok)
	is.True(errors.Is(err, sql.ErrConnDone))
}
