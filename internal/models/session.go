package models

import "time"

// Session is the client-side representation of "who is logged in": an opaque
// bearer token for the upstream CRM plus the profile fetched with it. The
// session store is its sole owner; no other component mutates it directly.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      *User     `json:"user,omitempty"`
	Locale    string    `json:"locale,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Restored reports whether the profile has been fetched for this session.
// A persisted session reloaded after a process restart holds only the token
// until the who-am-I call succeeds.
func (s *Session) Restored() bool {
	return s != nil && s.User != nil
}

// Expired reports whether the session has passed its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Role returns the canonical role of the session's user, or RoleUnknown for
// anonymous or unrestored sessions.
func (s *Session) Role() Role {
	if s == nil || s.User == nil {
		return RoleUnknown
	}
	return s.User.CanonicalRole()
}
