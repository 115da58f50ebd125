package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Start(ctx context.Context, args []string) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) error
	Status(ctx context.Context) error
	Sync(ctx context.Context) error

	Projects(ctx context.Context) error
	AddProject(ctx context.Context, args []string) error
	Issues(ctx context.Context, args []string) error
	AddIssue(ctx context.Context, args []string) error
	IssueStatus(ctx context.Context, args []string) error
	ArchiveIssue(ctx context.Context, args []string) error
	Entries(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = `Available commands:
  start project|issue <id> [description]   start tracking (stops the active timer)
  pause | resume | stop                    control the active timer
  status                                   show the active timer
  sync                                     replay queued actions and reconcile with the server
  projects | addproject <name> [color]
  issues [project-id] [status] | addissue <project-id> <priority> <title>
  issuestatus <issue-id> <status> | archiveissue <issue-id>
  entries [limit]                          recent time entries
  export [csv|ics] [--download]            render a report on the server
  logout | exit`
)

// runREPL starts a simple read-eval-print loop for the tracker CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Errors returned by handlers are printed and the loop continues; commands
// that need a session are refused until the user logs in.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gt %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			report(a.Register(ctx))
			continue
		case "login":
			report(a.Login(ctx))
			continue
		}

		if !a.isLoggedIn() {
			if isKnown(cmd) {
				printlnFn("Please log in first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "start":
			report(a.Start(ctx, args))
		case "pause":
			report(a.Pause(ctx))
		case "resume":
			report(a.Resume(ctx))
		case "stop":
			report(a.Stop(ctx))
		case "status", "s":
			report(a.Status(ctx))
		case "sync":
			report(a.Sync(ctx))
		case "projects":
			report(a.Projects(ctx))
		case "addproject":
			report(a.AddProject(ctx, args))
		case "issues":
			report(a.Issues(ctx, args))
		case "addissue":
			report(a.AddIssue(ctx, args))
		case "issuestatus":
			report(a.IssueStatus(ctx, args))
		case "archiveissue":
			report(a.ArchiveIssue(ctx, args))
		case "entries":
			report(a.Entries(ctx, args))
		case "export":
			report(a.Export(ctx, args))
		case "logout":
			report(a.Logout(ctx))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var sessionCommands = map[string]struct{}{
	"start": {}, "pause": {}, "resume": {}, "stop": {}, "status": {}, "s": {}, "sync": {},
	"projects": {}, "addproject": {}, "issues": {}, "addissue": {}, "issuestatus": {}, "archiveissue": {},
	"entries": {}, "export": {}, "logout": {},
}

func isKnown(cmd string) bool {
	_, ok := sessionCommands[cmd]
	return ok
}

func report(err error) {
	if err != nil {
		printlnFn(errorStyle.Render("Error: " + err.Error()))
	}
}
