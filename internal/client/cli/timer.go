package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtracker/internal/client/services"
	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

var errStartUsage = errors.New("usage: start project|issue <id> [description]")

// getStatus is the prompt prefix: user, connectivity and a timer badge.
func (a *App) getStatus() string {
	parts := make([]string, 0, 3)
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if a.isLoggedIn() && a.timerService != nil {
		parts = append(parts, statusBadge(a.timerService.Snapshot(), a.timerService.Display()))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Start begins tracking a project or issue; any active timer is stopped
// first and its entry is printed.
func (a *App) Start(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errStartUsage
	}
	tr, err := timer.ParseTrackable(args[0], args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", errStartUsage, err)
	}
	desc := strings.Join(args[2:], " ")

	res, err := a.timerService.Start(ctx, tr, desc)
	if err != nil {
		return err
	}
	if res.Entry != nil {
		printlnFn("Stopped previous timer: " + renderEntry(res.Entry))
	}
	a.printResult("Started "+trackableLabel(tr), res)
	return nil
}

func (a *App) Pause(ctx context.Context) error {
	res, err := a.timerService.Pause(ctx)
	if err != nil {
		return noActive(err)
	}
	a.printResult("Paused at "+formatElapsed(res.State.CachedElapsed), res)
	return nil
}

func (a *App) Resume(ctx context.Context) error {
	res, err := a.timerService.Resume(ctx)
	if err != nil {
		return noActive(err)
	}
	a.printResult("Resumed at "+formatElapsed(res.State.CachedElapsed), res)
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	res, err := a.timerService.Stop(ctx)
	if err != nil {
		return noActive(err)
	}
	msg := "Stopped"
	if res.Entry != nil {
		msg = "Stopped: " + renderEntry(res.Entry)
	}
	a.printResult(msg, res)
	return nil
}

func (a *App) Status(ctx context.Context) error {
	pending, err := a.timerService.Pending(ctx)
	if err != nil {
		return err
	}
	printlnFn(renderStatus(a.timerService.Snapshot(), a.timerService.Display(), pending, a.Mode()))
	return nil
}

// Sync replays the offline queue and reconciles the mirror with the server.
func (a *App) Sync(ctx context.Context) error {
	err := a.timerService.Sync(ctx)
	switch {
	case err == nil:
		a.setMode(ModeOnline)
		printlnFn(successStyle.Render("Synchronized"))
		return nil
	case errors.Is(err, services.ErrSyncInProgress):
		printlnFn(dimStyle.Render("Sync already running"))
		return nil
	default:
		return err
	}
}

func (a *App) printResult(msg string, res *services.ActionResult) {
	if res.Queued {
		printlnFn(warningStyle.Render(msg + " (offline, queued)"))
		return
	}
	printlnFn(successStyle.Render(msg))
}

func noActive(err error) error {
	if errors.Is(err, common.ErrNoActiveTimer) {
		return errors.New("no active timer")
	}
	return err
}
