// Package users is the account store. Besides lookups it provides the
// per-user row lock that serializes timer commands.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophtracker/internal/server/models"
)

// Repository persists accounts.
type Repository interface {
	// Create inserts user and returns it with ID and CreatedAt filled.
	// A taken login yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound for unknown logins.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// Lock takes a row lock on the user for the rest of the transaction.
	// Every timer mutation goes through it so a user's timer operations
	// apply one at a time.
	Lock(ctx context.Context, userID string) error
}
