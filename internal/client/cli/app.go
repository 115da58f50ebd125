package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophtracker/internal/client/client"
	"github.com/dmitrijs2005/gophtracker/internal/client/config"
	"github.com/dmitrijs2005/gophtracker/internal/client/mirror"
	"github.com/dmitrijs2005/gophtracker/internal/client/services"
	"github.com/dmitrijs2005/gophtracker/internal/clock"
	"github.com/dmitrijs2005/gophtracker/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	authService    services.AuthService
	timerService   services.TimerService
	catalogService services.CatalogService
	runner         *mirror.Runner

	loggedIn bool
	userName string

	modeMu sync.RWMutex
	mode   Mode

	reader *bufio.Reader
	out    io.Writer

	runCtx     context.Context
	runnerOnce sync.Once
}

// NewApp opens the local store, dials the server and wires the services.
// The server does not have to be reachable: the client is lazy and the app
// starts offline until the first successful ping or login.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.LocalDBFile)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewTrackerClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db)
	ts := services.NewTimerService(apiClient, db, clock.System{}, logger, c)
	cs := services.NewCatalogService(apiClient)

	a := &App{
		config:         c,
		logger:         logger,
		authService:    as,
		timerService:   ts,
		catalogService: cs,
		runner:         mirror.NewRunner(ts, as, logger, c),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}
	a.runner.OnModeChange(func(online bool) {
		if online {
			a.setMode(ModeOnline)
		} else {
			a.setMode(ModeOffline)
		}
	})
	return a, nil
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "switched mode", "mode", string(mode))
	}
	if a.runner != nil {
		a.runner.SetOnline(mode == ModeOnline)
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

// Run shows the welcome banner, logs the user in and blocks in the REPL
// until the user exits. The mirror loops start with the first successful login.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.runCtx = ctx

	printlnFn("Welcome to the time tracker CLI (type 'help' for commands)")

	report(a.Login(ctx))

	runREPL(ctx, a, a.getStatus, a.reader)
}

// startSession restores the mirror for the logged-in user, reconciles it
// when the server is reachable and starts the background loops once.
func (a *App) startSession(ctx context.Context) {
	if err := a.timerService.Load(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore timer mirror", "error", err)
	}
	if a.Mode() == ModeOnline {
		if err := a.timerService.Sync(ctx); err != nil {
			a.logger.Warn(ctx, "initial sync failed", "error", err)
		}
	}

	if a.runCtx == nil || a.runner == nil {
		return
	}
	a.runnerOnce.Do(func() {
		go func() {
			if err := a.runner.Run(a.runCtx); err != nil {
				a.logger.Error(a.runCtx, "background loops stopped", "error", err)
			}
		}()
	})
}
