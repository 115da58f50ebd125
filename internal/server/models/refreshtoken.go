package models

import "time"

// RefreshToken is an opaque token stored server side and exchanged for a new
// access/refresh pair. Each token is single use.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is no longer valid at now. A token is
// still accepted at the exact instant it expires.
func (t *RefreshToken) Expired(now time.Time) bool {
	return t.Expires.Before(now)
}
