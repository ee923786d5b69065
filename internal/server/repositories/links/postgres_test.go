package links

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/xrcouture/VideostreamBackend/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	getQ   = `(?s)^SELECT\s+id,\s*email,\s*access_token,\s*click_count\s+FROM\s+one_time_links\s+WHERE\s+email\s*=\s*\$1\s*$`
	claimQ = `(?s)^UPDATE\s+one_time_links\s+SET\s+access_token\s*=\s*\$2\s+WHERE\s+email\s*=\s*\$1\s+AND\s+access_token\s+IS\s+NULL\s*$`
)

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "access_token", "click_count"}).
		AddRow("l-1", "a@x.com", nil, int64(0))
	mock.ExpectQuery(getQ).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "l-1" || got.Email != "a@x.com" || got.Issued() {
		t.Fatalf("unexpected link: %+v", got)
	}
}

func TestGetByEmail_FoundIssued(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "access_token", "click_count"}).
		AddRow("l-2", "c@x.com", "abc123", int64(0))
	mock.ExpectQuery(getQ).
		WithArgs("c@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "c@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if !got.Issued() || got.AccessToken.String != "abc123" {
		t.Fatalf("unexpected link: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).
		WithArgs("a@x.com").
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestClaimToken_Claimed(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(claimQ).
		WithArgs("a@x.com", "deadbeef").
		WillReturnResult(sqlmock.NewResult(0, 1))

	claimed, err := repo.ClaimToken(context.Background(), "a@x.com", "deadbeef")
	if err != nil {
		t.Fatalf("ClaimToken error: %v", err)
	}
	if !claimed {
		t.Fatalf("expected claim to match a row")
	}
}

func TestClaimToken_NoneMatched(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(claimQ).
		WithArgs("c@x.com", "deadbeef").
		WillReturnResult(sqlmock.NewResult(0, 0))

	claimed, err := repo.ClaimToken(context.Background(), "c@x.com", "deadbeef")
	if err != nil {
		t.Fatalf("ClaimToken error: %v", err)
	}
	if claimed {
		t.Fatalf("expected claim to match no rows")
	}
}

func TestClaimToken_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(claimQ).
		WithArgs("a@x.com", "deadbeef").
		WillReturnError(errors.New("db down"))

	_, err := repo.ClaimToken(context.Background(), "a@x.com", "deadbeef")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
