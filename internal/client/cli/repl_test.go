package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  map[string][]string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return nil
}

func (f *fakeExec) isLoggedIn() bool                                   { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error                 { return f.rec("register", nil) }
func (f *fakeExec) Login(ctx context.Context) error                    { f.loggedIn = true; return f.rec("login", nil) }
func (f *fakeExec) Logout(ctx context.Context) error                   { f.loggedIn = false; return f.rec("logout", nil) }
func (f *fakeExec) Pause(ctx context.Context) error                    { return f.rec("pause", nil) }
func (f *fakeExec) Resume(ctx context.Context) error                   { return f.rec("resume", nil) }
func (f *fakeExec) Stop(ctx context.Context) error                     { return f.rec("stop", nil) }
func (f *fakeExec) Status(ctx context.Context) error                   { return f.rec("status", nil) }
func (f *fakeExec) Sync(ctx context.Context) error                     { return f.rec("sync", nil) }
func (f *fakeExec) Projects(ctx context.Context) error                 { return f.rec("projects", nil) }
func (f *fakeExec) Start(ctx context.Context, a []string) error        { return f.rec("start", a) }
func (f *fakeExec) AddProject(ctx context.Context, a []string) error   { return f.rec("addproject", a) }
func (f *fakeExec) Issues(ctx context.Context, a []string) error       { return f.rec("issues", a) }
func (f *fakeExec) AddIssue(ctx context.Context, a []string) error     { return f.rec("addissue", a) }
func (f *fakeExec) IssueStatus(ctx context.Context, a []string) error  { return f.rec("issuestatus", a) }
func (f *fakeExec) ArchiveIssue(ctx context.Context, a []string) error { return f.rec("archiveissue", a) }
func (f *fakeExec) Entries(ctx context.Context, a []string) error      { return f.rec("entries", a) }
func (f *fakeExec) Export(ctx context.Context, a []string) error       { return f.rec("export", a) }

func input(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, input(
		"help",
		"start project p1",
		"login",
		"help",
		"start issue i9 fix the build",
		"pause",
		"resume",
		"status",
		"stop",
		"sync",
		"issues p1 resolved",
		"issuestatus i1 closed",
		"archiveissue i1",
		"entries 5",
		"export ics --download",
		"foobar",
		"logout",
		"exit",
		"projects",
	))

	assert.Equal(t, []string{
		"login", "start", "pause", "resume", "status", "stop", "sync",
		"issues", "issuestatus", "archiveissue", "entries", "export", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"i1", "closed"}, exec.args["issuestatus"])
	assert.Equal(t, []string{"issue", "i9", "fix", "the", "build"}, exec.args["start"])
	assert.Equal(t, []string{"ics", "--download"}, exec.args["export"])
}

func TestRunREPL_RefusesSessionCommandsWhenLoggedOut(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, input("stop", "bogus", "quit"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Please log in first")
	assert.Contains(t, *out, "Unknown command:")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, input("", "pause"))

	assert.Equal(t, []string{"pause"}, exec.calls)
}
