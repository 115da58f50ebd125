package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/client/client"
	"github.com/dmitrijs2005/gophtracker/internal/client/migrations"
	"github.com/dmitrijs2005/gophtracker/internal/client/models"
	"github.com/dmitrijs2005/gophtracker/internal/clock"
	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/logging"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(db, "."))
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	require.NoError(t, err)
	return v
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// ---- loggers ----

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// recLogger keeps warnings so tests can assert on repairs and discards.
type recLogger struct {
	nopLogger
	mu    sync.Mutex
	warns []string
}

func (r *recLogger) Warn(_ context.Context, msg string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, msg)
}

func (r *recLogger) With(...any) logging.Logger { return r }

func (r *recLogger) warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warns...)
}

// ---- fake client ----

// fakeClient implements client.Client. Its timer commands run the real
// state machine against a server clock that is offset from the local one,
// so mirror arithmetic is exercised end to end.
type fakeClient struct {
	mu sync.Mutex

	clk    clock.Clock
	offset time.Duration
	down   bool
	// errs injects a failure per method name.
	errs map[string]error
	// calls records the order of timer commands that reached the server.
	calls []string

	active   *timer.Timer
	nextID   int
	lastSnap *timer.Snapshot

	// auth
	CloseErr    error
	RegisterErr error
	GetSaltRet  []byte
	GetSaltErr  error
	LoginErr    error
	PingErr     error

	LastRegisterUser string
	LastRegisterSalt []byte
	LastRegisterKey  []byte
	LastGetSaltUser  string
	LastLoginUser    string
	LastLoginKey     []byte

	// catalog
	projects  []*models.Project
	issues    []*models.Issue
	entries   []*timer.TimeEntry
	export    *models.Export
	lastLimit int
}

func newFakeClient(clk clock.Clock) *fakeClient {
	return &fakeClient{clk: clk, errs: map[string]error{}}
}

func (f *fakeClient) now() time.Time {
	return f.clk.Now().Add(f.offset)
}

func (f *fakeClient) enter(method string) error {
	if f.down {
		return client.ErrUnavailable
	}
	f.calls = append(f.calls, method)
	return f.errs[method]
}

func (f *fakeClient) setDown(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = v
}

func (f *fakeClient) remote(t *timer.Timer) *models.RemoteTimer {
	now := f.now()
	if t == nil {
		return &models.RemoteTimer{ServerTime: now}
	}
	cp := *t
	return &models.RemoteTimer{Timer: &cp, Elapsed: t.Elapsed(now), ServerTime: now}
}

func (f *fakeClient) stopActive() *timer.TimeEntry {
	e, _ := f.active.Stop(f.now())
	e.ID = fmt.Sprintf("entry-%s", f.active.ID)
	f.active = nil
	return e
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Register(ctx context.Context, username string, salt []byte, key []byte) error {
	f.LastRegisterUser = username
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterKey = append([]byte(nil), key...)
	return f.RegisterErr
}

func (f *fakeClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	f.LastGetSaltUser = username
	return append([]byte(nil), f.GetSaltRet...), f.GetSaltErr
}

func (f *fakeClient) Login(ctx context.Context, username string, key []byte) error {
	f.LastLoginUser = username
	f.LastLoginKey = append([]byte(nil), key...)
	return f.LoginErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) GetActive(ctx context.Context) (*models.RemoteTimer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("get_active"); err != nil {
		return nil, err
	}
	return f.remote(f.active), nil
}

func (f *fakeClient) Start(ctx context.Context, tr timer.Trackable, description string) (*models.RemoteTimer, *timer.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("start"); err != nil {
		return nil, nil, err
	}
	var stopped *timer.TimeEntry
	if f.active != nil {
		stopped = f.stopActive()
	}
	f.nextID++
	t := timer.New("u1", tr, "", "", description)
	t.ID = fmt.Sprintf("srv-%d", f.nextID)
	if err := t.Start(f.now()); err != nil {
		return nil, nil, err
	}
	f.active = t
	return f.remote(t), stopped, nil
}

func (f *fakeClient) Pause(ctx context.Context) (*models.RemoteTimer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("pause"); err != nil {
		return nil, err
	}
	if f.active == nil {
		return nil, common.ErrNoActiveTimer
	}
	f.active.Pause(f.now())
	return f.remote(f.active), nil
}

func (f *fakeClient) Resume(ctx context.Context) (*models.RemoteTimer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("resume"); err != nil {
		return nil, err
	}
	if f.active == nil {
		return nil, common.ErrNoActiveTimer
	}
	f.active.Resume(f.now())
	return f.remote(f.active), nil
}

func (f *fakeClient) Stop(ctx context.Context) (*timer.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("stop"); err != nil {
		return nil, err
	}
	if f.active == nil {
		return nil, common.ErrNoActiveTimer
	}
	return f.stopActive(), nil
}

func (f *fakeClient) Sync(ctx context.Context, s timer.Snapshot) (*models.RemoteTimer, *timer.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("sync"); err != nil {
		return nil, nil, err
	}
	f.lastSnap = &s
	if f.active == nil || f.active.ID != s.TimerID {
		return nil, nil, fmt.Errorf("%w: timer", common.ErrorNotFound)
	}
	out, err := timer.Reconcile(f.active, s, f.now())
	if err != nil {
		return nil, nil, err
	}
	t := f.active
	if !t.Status.Active() {
		f.active = nil
	}
	return f.remote(t), out.Entry, nil
}

func (f *fakeClient) RecentEntries(ctx context.Context, limit int) ([]*timer.TimeEntry, error) {
	f.lastLimit = limit
	return f.entries, f.errs["recent"]
}

func (f *fakeClient) CreateProject(ctx context.Context, name, color string) (*models.Project, error) {
	if err := f.errs["create_project"]; err != nil {
		return nil, err
	}
	p := &models.Project{ID: fmt.Sprintf("p%d", len(f.projects)+1), Name: name, Color: color}
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeClient) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return f.projects, nil
}

func (f *fakeClient) CreateIssue(ctx context.Context, projectID, title, priority string) (*models.Issue, error) {
	i := &models.Issue{
		ID: fmt.Sprintf("i%d", len(f.issues)+1), ProjectID: projectID, Title: title, Priority: priority,
		Status: "open", IsActive: true,
	}
	f.issues = append(f.issues, i)
	return i, nil
}

func (f *fakeClient) ListIssues(ctx context.Context, projectID, status string) ([]*models.Issue, error) {
	var out []*models.Issue
	for _, i := range f.issues {
		if i.IsActive && (projectID == "" || i.ProjectID == projectID) && (status == "" || i.Status == status) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeClient) UpdateIssue(ctx context.Context, id string, u models.IssueUpdate) (*models.Issue, error) {
	if err := f.errs["update_issue"]; err != nil {
		return nil, err
	}
	for _, i := range f.issues {
		if i.ID != id {
			continue
		}
		if u.Status != nil {
			i.Status = *u.Status
		}
		if u.IsActive != nil {
			i.IsActive = *u.IsActive
		}
		return i, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeClient) Export(ctx context.Context, format string) (*models.Export, error) {
	if err := f.errs["export"]; err != nil {
		return nil, err
	}
	return f.export, nil
}
