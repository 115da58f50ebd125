package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophtracker/internal/client/models"
	"github.com/dmitrijs2005/gophtracker/internal/client/services"
	"github.com/dmitrijs2005/gophtracker/internal/logging"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// captureOutput swaps printlnFn for a recorder.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				lines = append(lines, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	regUser string
	regPass []byte
	regErr  error

	onlineUser string
	onlinePass []byte
	onlineErr  error

	offlineUser string
	offlinePass []byte
	offlineErr  error

	clearCalled bool
	clearErr    error
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}
func (f *fakeAuth) OnlineLogin(_ context.Context, user string, pass []byte) error {
	f.onlineUser, f.onlinePass = user, append([]byte(nil), pass...)
	return f.onlineErr
}
func (f *fakeAuth) OfflineLogin(_ context.Context, user string, pass []byte) error {
	f.offlineUser, f.offlinePass = user, append([]byte(nil), pass...)
	return f.offlineErr
}
func (f *fakeAuth) ClearOfflineData(context.Context) error {
	f.clearCalled = true
	return f.clearErr
}
func (f *fakeAuth) Close(ctx context.Context) error { return nil }
func (f *fakeAuth) Ping(ctx context.Context) error  { return nil }

type fakeTimers struct {
	services.TimerService

	state   models.MirrorState
	display int64
	pending int
	queued  bool
	entry   *timer.TimeEntry
	err     error
	syncErr error

	started  *timer.Trackable
	desc     string
	calls    []string
	loadRuns int
}

func (f *fakeTimers) result() (*services.ActionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.ActionResult{State: f.state, Entry: f.entry, Queued: f.queued}, nil
}

func (f *fakeTimers) Load(context.Context) error           { f.loadRuns++; return nil }
func (f *fakeTimers) Snapshot() models.MirrorState         { return f.state }
func (f *fakeTimers) Display() int64                       { return f.display }
func (f *fakeTimers) Pending(context.Context) (int, error) { return f.pending, nil }

func (f *fakeTimers) Start(_ context.Context, tr timer.Trackable, desc string) (*services.ActionResult, error) {
	f.calls = append(f.calls, "start")
	f.started, f.desc = &tr, desc
	return f.result()
}
func (f *fakeTimers) Pause(context.Context) (*services.ActionResult, error) {
	f.calls = append(f.calls, "pause")
	return f.result()
}
func (f *fakeTimers) Resume(context.Context) (*services.ActionResult, error) {
	f.calls = append(f.calls, "resume")
	return f.result()
}
func (f *fakeTimers) Stop(context.Context) (*services.ActionResult, error) {
	f.calls = append(f.calls, "stop")
	return f.result()
}
func (f *fakeTimers) Sync(context.Context) error {
	f.calls = append(f.calls, "sync")
	return f.syncErr
}

type fakeCatalog struct {
	projects []*models.Project
	issues   []*models.Issue
	entries  []*timer.TimeEntry
	export   *models.Export
	path     string
	err      error

	lastName, lastColor      string
	lastProject, lastTitle   string
	lastPriority, lastFormat string
	lastStatus, lastIssueID  string
	lastLimit                int
	lastDownload             bool
	archived                 bool
}

func (f *fakeCatalog) CreateProject(_ context.Context, name, color string) (*models.Project, error) {
	f.lastName, f.lastColor = name, color
	if f.err != nil {
		return nil, f.err
	}
	return &models.Project{ID: "p1", Name: name, Color: color}, nil
}
func (f *fakeCatalog) ListProjects(context.Context) ([]*models.Project, error) {
	return f.projects, f.err
}
func (f *fakeCatalog) CreateIssue(_ context.Context, projectID, title, priority string) (*models.Issue, error) {
	f.lastProject, f.lastTitle, f.lastPriority = projectID, title, priority
	if f.err != nil {
		return nil, f.err
	}
	return &models.Issue{ID: "i1", ProjectID: projectID, Title: title, Priority: priority}, nil
}
func (f *fakeCatalog) ListIssues(_ context.Context, projectID, status string) ([]*models.Issue, error) {
	f.lastProject, f.lastStatus = projectID, status
	return f.issues, f.err
}
func (f *fakeCatalog) SetIssueStatus(_ context.Context, id, status string) (*models.Issue, error) {
	f.lastIssueID, f.lastStatus = id, status
	if f.err != nil {
		return nil, f.err
	}
	return &models.Issue{ID: id, Status: status, IsActive: true}, nil
}
func (f *fakeCatalog) ArchiveIssue(_ context.Context, id string) (*models.Issue, error) {
	f.lastIssueID, f.archived = id, true
	if f.err != nil {
		return nil, f.err
	}
	return &models.Issue{ID: id}, nil
}
func (f *fakeCatalog) RecentEntries(_ context.Context, limit int) ([]*timer.TimeEntry, error) {
	f.lastLimit = limit
	return f.entries, f.err
}
func (f *fakeCatalog) Export(_ context.Context, format string, download bool) (*models.Export, string, error) {
	f.lastFormat, f.lastDownload = format, download
	if f.err != nil {
		return nil, "", f.err
	}
	return f.export, f.path, nil
}

func newTestApp(auth *fakeAuth, ft *fakeTimers, fc *fakeCatalog) *App {
	return &App{
		logger:         nopLogger{},
		authService:    auth,
		timerService:   ft,
		catalogService: fc,
		out:            io.Discard,
	}
}
