package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophtracker/internal/client/client"
	"github.com/dmitrijs2005/gophtracker/internal/common"
)

// Prompt seams, replaced in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, fmt.Errorf("username: %w", err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, fmt.Errorf("password: %w", err)
	}
	return userName, password, nil
}

// Register prompts for a username and password and creates the account on
// the server. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	printlnFn(successStyle.Render("Success!"))
	return nil
}

// Login prompts for credentials and tries the server first. When the server
// is unreachable it falls back to the locally cached verifier, and the
// session starts in offline mode:
//   - ModeOnline if online login succeeds,
//   - ModeOffline if offline login succeeds,
//   - ModeDisabled if both fail.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.OnlineLogin(ctx, userName, password)
	switch {
	case err == nil:
		a.logger.Info(ctx, "login successful", "user", userName)
		a.finishLogin(ctx, userName, ModeOnline)
		return nil

	case client.Retryable(err):
		a.logger.Warn(ctx, "server unavailable, trying offline login")
		if err := a.authService.OfflineLogin(ctx, userName, password); err != nil {
			a.logger.Warn(ctx, "offline login unsuccessful", "error", err)
			a.setMode(ModeDisabled)
			return err
		}
		a.logger.Info(ctx, "offline login successful", "user", userName)
		a.finishLogin(ctx, userName, ModeOffline)
		return nil

	default:
		a.logger.Warn(ctx, "login unsuccessful", "error", err)
		return err
	}
}

func (a *App) finishLogin(ctx context.Context, userName string, mode Mode) {
	a.loggedIn = true
	a.userName = userName
	a.setMode(mode)
	a.startSession(ctx)
}

// Logout wipes everything cached locally for the user: credentials, the
// timer mirror and the offline queue.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.ClearOfflineData(ctx); err != nil {
		return err
	}
	a.loggedIn = false
	a.userName = ""
	if err := a.timerService.Load(ctx); err != nil {
		a.logger.Warn(ctx, "could not reset timer mirror", "error", err)
	}
	return nil
}
