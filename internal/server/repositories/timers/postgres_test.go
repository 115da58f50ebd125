package timers

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var (
	t0   = time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)
	cols = []string{"id", "user_id", "trackable_type", "trackable_id", "project_id", "issue_id", "status",
		"started_at", "paused_at", "stopped_at", "elapsed_seconds", "description", "created_at"}
)

const (
	insertQ = `(?s)INSERT\s+INTO\s+timers\s*\(.*\)\s*VALUES\s*\(\$1,.*\$12\)\s*RETURNING\s+created_at`
	updateQ = `(?s)UPDATE\s+timers\s+SET\s+status\s*=\s*\$3,.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`
	activeQ = `(?s)SELECT\s+id,.*FROM\s+timers\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+status\s*<>\s*'stopped'`
	byIDQ   = `(?s)SELECT\s+id,.*FROM\s+timers\s+WHERE\s+id\s*=\s*\$1`
)

func runningTimer() *timer.Timer {
	tm := timer.New("u1", timer.Issue("i1"), "p1", "i1", "triage")
	tm.ID = "t1"
	_ = tm.Start(t0)
	return tm
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	tm := runningTimer()
	mock.ExpectQuery(insertQ).
		WithArgs("t1", "u1", "issue", "i1", "p1", "i1", "running", t0, nil, nil, int64(0), "triage").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(t0))

	require.NoError(t, repo.Create(context.Background(), tm))
	assert.True(t, tm.CreatedAt.Equal(t0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SecondActiveTimer(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: ActiveIndex})

	err := repo.Create(context.Background(), runningTimer())
	assert.ErrorIs(t, err, common.ErrActiveTimerExists)
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestCreate_OtherUniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "timers_pkey"})

	err := repo.Create(context.Background(), runningTimer())
	assert.NotErrorIs(t, err, common.ErrActiveTimerExists)
	assert.ErrorContains(t, err, "db error")
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	tm := runningTimer()
	tm.Pause(t0.Add(90 * time.Second))

	mock.ExpectExec(updateQ).
		WithArgs("t1", "u1", "paused", t0, t0.Add(90*time.Second), nil, int64(90)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), tm))

	mock.ExpectExec(updateQ).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), tm), common.ErrorNotFound)

	mock.ExpectExec(updateQ).WillReturnError(errors.New("db down"))
	assert.ErrorContains(t, repo.Update(context.Background(), tm), "db error: db down")

	mock.ExpectExec(updateQ).WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))
	assert.ErrorContains(t, repo.Update(context.Background(), tm), "rows affected error")
}

func TestFindActive(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	paused := t0.Add(time.Minute)
	mock.ExpectQuery(activeQ).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("t1", "u1", "project", "p1", "p1", nil, "paused", t0, paused, nil, int64(60), "", t0))

	got, err := repo.FindActive(context.Background(), "u1")
	require.NoError(t, err)

	want := &timer.Timer{
		ID: "t1", UserID: "u1", Trackable: timer.Project("p1"), ProjectID: "p1",
		Status: timer.StatusPaused, StartedAt: t0, PausedAt: paused, ElapsedSeconds: 60, CreatedAt: t0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("timer mismatch (-want +got):\n%s", diff)
	}

	mock.ExpectQuery(activeQ).WithArgs("u2").WillReturnError(sql.ErrNoRows)
	_, err = repo.FindActive(context.Background(), "u2")
	assert.ErrorIs(t, err, common.ErrNoActiveTimer)

	mock.ExpectQuery(activeQ).WithArgs("u1").WillReturnError(errors.New("boom"))
	_, err = repo.FindActive(context.Background(), "u1")
	assert.ErrorContains(t, err, "db error: boom")
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	stopped := t0.Add(2 * time.Minute)
	mock.ExpectQuery(byIDQ).WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("t1", "u1", "issue", "i1", nil, "i1", "stopped", t0, nil, stopped, int64(120), "x", t0))

	got, err := repo.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, timer.StatusStopped, got.Status)
	assert.Equal(t, "", got.ProjectID)
	assert.True(t, got.StoppedAt.Equal(stopped))
	assert.True(t, got.PausedAt.IsZero())

	mock.ExpectQuery(byIDQ).WithArgs("gone").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
