// Package models defines server-side records persisted in the database that
// are not part of the timer core.
package models

import "time"

type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
