// Package session owns the client-side session state: persisted bearer
// tokens for the upstream CRM and the user profiles derived from them.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/propdesk/internal/common"
	"github.com/bobmcallan/propdesk/internal/interfaces"
	"github.com/bobmcallan/propdesk/internal/models"
)

// Store is a file-backed session store. Tokens survive process restarts the
// way a browser's local storage would; profiles do not. They are re-fetched
// from the who-am-I endpoint on first use after a restart.
//
// The store is single-writer, multi-reader: all mutation goes through its
// methods under the write lock, every authenticated request reads under the
// read lock.
type Store struct {
	mu       sync.RWMutex
	path     string
	ttl      time.Duration
	sessions map[string]*models.Session
	crm      interfaces.CRMClient
	logger   *common.Logger
}

// NewStore loads any persisted sessions from path and returns the store.
// A missing file is a clean start, not an error.
func NewStore(path string, ttl time.Duration, crm interfaces.CRMClient, logger *common.Logger) (*Store, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	s := &Store{
		path:     path,
		ttl:      ttl,
		sessions: make(map[string]*models.Session),
		crm:      crm,
		logger:   logger,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// load reads the persisted session file. Profiles are dropped on load so
// every restored session revalidates its token against the API.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}

	var persisted []*models.Session
	if err := json.Unmarshal(data, &persisted); err != nil {
		// A corrupt session file is discarded, not fatal. Users log in again.
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Discarding unreadable session file")
		return nil
	}

	now := time.Now()
	for _, sess := range persisted {
		if sess.Expired(now) {
			continue
		}
		sess.User = nil
		s.sessions[sess.ID] = sess
	}

	s.logger.Debug().Int("count", len(s.sessions)).Msg("Sessions loaded")
	return nil
}

// flush writes all sessions to disk. Caller must hold the write lock.
func (s *Store) flush() error {
	sessions := make([]*models.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Create registers a new session for a freshly issued token.
func (s *Store) Create(token string, user *models.User, locale string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &models.Session{
		ID:        uuid.New().String(),
		Token:     token,
		User:      user,
		Locale:    locale,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.sessions[sess.ID] = sess
	if err := s.flush(); err != nil {
		delete(s.sessions, sess.ID)
		return nil, err
	}

	return snapshot(sess), nil
}

// snapshot copies a session so the caller never holds the map's live
// pointer. The live session is only ever touched under the write lock.
func snapshot(sess *models.Session) *models.Session {
	cp := *sess
	return &cp
}

// Get returns a copy of the session by id, or false if unknown or expired.
func (s *Store) Get(id string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Expired(time.Now()) {
		return nil, false
	}
	return snapshot(sess), true
}

// Restore ensures the session's profile is present, calling the who-am-I
// endpoint when it is not. Any failure (bad token, network error, non-2xx)
// deletes the session: an unverifiable token is an expired session.
func (s *Store) Restore(ctx context.Context, id string) (*models.Session, error) {
	sess, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown session")
	}

	if sess.Restored() {
		return sess, nil
	}

	// The who-am-I call runs outside the lock. Concurrent restores of the
	// same session may both fetch the profile; the writes are idempotent.
	user, err := s.crm.CurrentUser(common.WithSession(ctx, sess))
	if err != nil {
		s.logger.Info().Err(err).Str("session_id", id).Msg("Session restore failed, clearing token")
		s.Delete(id)
		return nil, fmt.Errorf("session restore: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session")
	}
	live.User = user
	if err := s.flush(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist restored session")
	}
	return snapshot(live), nil
}

// Delete removes a session unconditionally. Local logout takes effect even
// if the disk write fails.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return nil
	}
	delete(s.sessions, id)
	return s.flush()
}

// SetLocale persists the locale preference on a session.
func (s *Store) SetLocale(id, locale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("unknown session")
	}
	sess.Locale = locale
	return s.flush()
}

// Purge drops sessions past their expiry, returning how many went.
func (s *Store) Purge(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	if purged > 0 {
		if err := s.flush(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to persist session purge")
		}
	}
	return purged
}

// Ensure Store implements SessionStore
var _ interfaces.SessionStore = (*Store)(nil)
