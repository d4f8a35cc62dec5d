package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/propdesk/internal/models"
)

// SessionStore owns all session state: the persisted bearer tokens and the
// profiles derived from them. It is the only multi-reader shared resource in
// the process and is single-writer (the store itself).
type SessionStore interface {
	// Create registers a new session for a freshly issued token.
	Create(token string, user *models.User, locale string) (*models.Session, error)

	// Get returns the session by id, or false if unknown or expired.
	Get(id string) (*models.Session, bool)

	// Restore ensures the session's profile is present, calling the
	// who-am-I endpoint when it is not. Any failure deletes the session:
	// a token the API no longer accepts is treated as an expired session.
	Restore(ctx context.Context, id string) (*models.Session, error)

	// Delete removes a session unconditionally. Local logout never fails.
	Delete(id string) error

	// SetLocale persists the locale preference on a session.
	SetLocale(id, locale string) error

	// Purge drops sessions past their expiry, returning how many went.
	Purge(now time.Time) int
}
