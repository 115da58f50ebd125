package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/dbx"
	"github.com/dmitrijs2005/gophtracker/internal/logging"
	"github.com/dmitrijs2005/gophtracker/internal/server/models"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/issues"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/projects"
	refreshtokensrepo "github.com/dmitrijs2005/gophtracker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/timeentries"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/timers"
	usersrepo "github.com/dmitrijs2005/gophtracker/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// recLogger keeps warnings so tests can check them.
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

// newTxDB returns a real *sql.DB so dbx transactions can begin and commit;
// the fakes below ignore the handle they are bound to.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// memStore backs every fake repository. failOnce errors are returned by the
// named operation exactly once; fail errors every time.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	projects map[string]*models.Project
	issues   map[string]*models.Issue
	timers   map[string]timer.Timer
	entries  []timer.TimeEntry
	locks    int
	fail     map[string]error
	failOnce map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		projects: map[string]*models.Project{},
		issues:   map[string]*models.Issue{},
		timers:   map[string]timer.Timer{},
		fail:     map[string]error{},
		failOnce: map[string]error{},
	}
}

func (m *memStore) err(op string) error {
	if err, ok := m.failOnce[op]; ok {
		delete(m.failOnce, op)
		return err
	}
	return m.fail[op]
}

func (m *memStore) Users(dbx.DBTX) usersrepo.Repository                 { return &fakeUsers{m} }
func (m *memStore) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return nil }
func (m *memStore) Projects(dbx.DBTX) projects.Repository               { return &fakeProjects{m} }
func (m *memStore) Issues(dbx.DBTX) issues.Repository                   { return &fakeIssues{m} }
func (m *memStore) Timers(dbx.DBTX) timers.Repository                   { return &fakeTimers{m} }
func (m *memStore) TimeEntries(dbx.DBTX) timeentries.Repository         { return &fakeEntries{m} }
func (m *memStore) RunMigrations(context.Context, *sql.DB) error        { return nil }

type fakeUsers struct{ m *memStore }

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.users[u.ID] = u
	return u, nil
}
func (f *fakeUsers) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, common.ErrorNotFound
}
func (f *fakeUsers) Lock(_ context.Context, userID string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.locks++
	if err := f.m.err("users.Lock"); err != nil {
		return err
	}
	if _, ok := f.m.users[userID]; !ok {
		return common.ErrorNotFound
	}
	return nil
}

type fakeProjects struct{ m *memStore }

func (f *fakeProjects) Create(_ context.Context, p *models.Project) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.err("projects.Create"); err != nil {
		return err
	}
	p.IsActive = true
	cp := *p
	f.m.projects[p.ID] = &cp
	return nil
}
func (f *fakeProjects) GetByID(_ context.Context, id string) (*models.Project, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	p, ok := f.m.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProjects) ListByUser(_ context.Context, userID string) ([]*models.Project, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []*models.Project
	for _, p := range f.m.projects {
		if p.UserID == userID && p.IsActive {
			cp := *p
			for _, e := range f.m.entries {
				if e.ProjectID == p.ID {
					cp.TotalSeconds += e.DurationSeconds
				}
			}
			for _, i := range f.m.issues {
				if i.ProjectID == p.ID && i.IsActive {
					cp.ActiveIssues++
				}
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeIssues struct{ m *memStore }

func (f *fakeIssues) Create(_ context.Context, i *models.Issue) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	i.IsActive = true
	cp := *i
	f.m.issues[i.ID] = &cp
	return nil
}
func (f *fakeIssues) GetByID(_ context.Context, id string) (*models.Issue, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	i, ok := f.m.issues[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *i
	return &cp, nil
}
func (f *fakeIssues) ListByUser(_ context.Context, userID string, flt models.IssueFilter) ([]*models.Issue, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []*models.Issue
	for _, i := range f.m.issues {
		if i.UserID != userID || !i.IsActive {
			continue
		}
		if (flt.ProjectID != "" && i.ProjectID != flt.ProjectID) || (flt.Status != "" && i.Status != flt.Status) {
			continue
		}
		cp := *i
		for _, e := range f.m.entries {
			if e.IssueID == i.ID {
				cp.TotalSeconds += e.DurationSeconds
			}
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}
func (f *fakeIssues) Update(_ context.Context, i *models.Issue) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.err("issues.Update"); err != nil {
		return err
	}
	cur, ok := f.m.issues[i.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Status = i.Status
	cur.IsActive = i.IsActive
	return nil
}

type fakeTimers struct{ m *memStore }

func (f *fakeTimers) activeLocked(userID string) (timer.Timer, bool) {
	for _, t := range f.m.timers {
		if t.UserID == userID && t.Status.Active() {
			return t, true
		}
	}
	return timer.Timer{}, false
}

func (f *fakeTimers) Create(_ context.Context, t *timer.Timer) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.err("timers.Create"); err != nil {
		return err
	}
	if _, ok := f.activeLocked(t.UserID); ok && t.Status.Active() {
		return common.ErrActiveTimerExists
	}
	t.CreatedAt = t.StartedAt
	f.m.timers[t.ID] = *t
	return nil
}
func (f *fakeTimers) Update(_ context.Context, t *timer.Timer) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.err("timers.Update"); err != nil {
		return err
	}
	if _, ok := f.m.timers[t.ID]; !ok {
		return common.ErrorNotFound
	}
	f.m.timers[t.ID] = *t
	return nil
}
func (f *fakeTimers) FindActive(_ context.Context, userID string) (*timer.Timer, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.err("timers.FindActive"); err != nil {
		return nil, err
	}
	t, ok := f.activeLocked(userID)
	if !ok {
		return nil, common.ErrNoActiveTimer
	}
	return &t, nil
}
func (f *fakeTimers) GetByID(_ context.Context, id string) (*timer.Timer, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	t, ok := f.m.timers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

type fakeEntries struct{ m *memStore }

func (f *fakeEntries) Create(_ context.Context, e *timer.TimeEntry) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.err("entries.Create"); err != nil {
		return err
	}
	f.m.entries = append(f.m.entries, *e)
	return nil
}
func (f *fakeEntries) Recent(_ context.Context, userID string, limit int) ([]*timer.TimeEntry, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.err("entries.Recent"); err != nil {
		return nil, err
	}
	var out []*timer.TimeEntry
	for i := len(f.m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if e := f.m.entries[i]; e.UserID == userID {
			if is, ok := f.m.issues[e.IssueID]; ok {
				e.DisplayName = is.Title
			} else if p, ok := f.m.projects[e.ProjectID]; ok {
				e.DisplayName = p.Name
			}
			out = append(out, &e)
		}
	}
	return out, nil
}
func (f *fakeEntries) ListByUser(_ context.Context, userID string, from, to time.Time) ([]*timer.TimeEntry, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if err := f.m.err("entries.ListByUser"); err != nil {
		return nil, err
	}
	var out []*timer.TimeEntry
	for _, e := range f.m.entries {
		if e.UserID != userID {
			continue
		}
		if (!from.IsZero() && e.EndedAt.Before(from)) || (!to.IsZero() && !e.EndedAt.Before(to)) {
			continue
		}
		e := e
		out = append(out, &e)
	}
	return out, nil
}

// entriesFor returns a copy of the stored entries of userID.
func (m *memStore) entriesFor(userID string) []timer.TimeEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []timer.TimeEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func (m *memStore) activeCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if t.UserID == userID && t.Status.Active() {
			n++
		}
	}
	return n
}
