// Package services contains application services for the tracker client.
// This file defines the authentication service: online/offline login, register,
// liveness check, and housekeeping of local (offline) data.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophtracker/internal/client/client"
	"github.com/dmitrijs2005/gophtracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophtracker/internal/client/repositories/mirror"
	"github.com/dmitrijs2005/gophtracker/internal/client/repositories/queue"
	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/cryptox"
	"github.com/dmitrijs2005/gophtracker/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - OnlineLogin: authenticate against the server and persist offline auth data.
//   - OfflineLogin: verify credentials against locally cached data.
//   - Register: create a new user on the server.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//   - ClearOfflineData: wipe everything cached locally for the user.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) error
	OnlineLogin(ctx context.Context, username string, password []byte) error
	Register(ctx context.Context, username string, password []byte) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

// OfflineLogin re-derives the verifier from (password, cached salt) and
// compares it with the cached one. Missing cache gives
// client.ErrLocalDataNotAvailable, a mismatch client.ErrUnauthorized.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) error {
	cached, err := a.getMetadataRepo().GetMany(ctx, metadata.KeyUsername, metadata.KeySalt, metadata.KeyVerifier)
	if err != nil {
		return err
	}

	savedUsername, ok := cached[metadata.KeyUsername]
	if !ok {
		return client.ErrLocalDataNotAvailable
	}
	if string(savedUsername) != username {
		return client.ErrUnauthorized
	}

	savedSalt, savedVerifier := cached[metadata.KeySalt], cached[metadata.KeyVerifier]
	if savedSalt == nil || savedVerifier == nil {
		return client.ErrLocalDataNotAvailable
	}

	if !cryptox.Equal(savedVerifier, cryptox.VerifierFor(password, savedSalt)) {
		return client.ErrUnauthorized
	}
	return nil
}

// OnlineLogin authenticates against the server and saves the offline login
// cache (username, salt, verifier). Logging in as a different user than the
// cached one drops the previous user's mirror and queue.
func (a *authService) OnlineLogin(ctx context.Context, userName string, password []byte) error {
	salt, err := a.client.GetSalt(ctx, userName)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	verifierCandidate := cryptox.VerifierFor(password, salt)

	if err := a.client.Login(ctx, userName, verifierCandidate); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, userName, salt, verifierCandidate); err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}
	return nil
}

func (a *authService) saveOfflineData(ctx context.Context, userName string, salt []byte, verifier []byte) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		metadataRepo := metadata.NewSQLiteRepository(tx)

		prev, err := metadataRepo.Get(ctx, metadata.KeyUsername)
		if err != nil {
			return err
		}
		if prev != nil && string(prev) != userName {
			if err := clearLocal(ctx, tx); err != nil {
				return err
			}
		}

		return metadataRepo.SetMany(ctx, map[string][]byte{
			metadata.KeyUsername: []byte(userName),
			metadata.KeySalt:     salt,
			metadata.KeyVerifier: verifier,
		})
	})
}

// Register creates a new account on the server. It generates a random salt,
// derives a key from the password, and sends salt and verifier.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(32)
	verifier := cryptox.VerifierFor(password, salt)

	return a.client.Register(ctx, username, salt, verifier)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData wipes the login cache, the mirrored timer and the pending
// action queue (on logout).
func (a *authService) ClearOfflineData(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, clearLocal)
}

func clearLocal(ctx context.Context, tx dbx.DBTX) error {
	if err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
		return err
	}
	if err := mirror.NewSQLiteRepository(tx).Clear(ctx); err != nil {
		return err
	}
	return queue.NewSQLiteRepository(tx).Clear(ctx)
}
