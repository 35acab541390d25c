package session

import (
	"sync"
	"time"

	"go-blog-client/internal/model"
	"go-blog-client/internal/token"
)

// Store is the single source of truth for authentication state. It is
// mutated only through Login and Logout, each a whole-state replace that is
// synchronously mirrored to the keystore. It never makes network calls.
type Store struct {
	mu  sync.RWMutex
	cur model.Session
	ks  Keystore
	now func() time.Time
}

func NewStore(ks Keystore) *Store {
	return &Store{ks: ks, now: time.Now}
}

// Restore loads the persisted session. A missing, malformed or expired
// access token downgrades to "logged out" and clears the keystore; restore
// itself never fails on bad session data, only on storage errors. Calling it
// twice with the same persisted state yields the same session.
func (s *Store) Restore() error {
	persisted, err := s.ks.Load()
	if err != nil {
		return err
	}

	if persisted.AccessToken == "" {
		s.replace(model.Session{})
		return nil
	}

	claims, err := token.Decode(persisted.AccessToken)
	if err != nil || claims.Expired(s.now()) {
		s.replace(model.Session{})
		return s.ks.Clear()
	}

	// Role comes from the token claim when it carries one; otherwise the
	// last persisted value stands.
	if role, ok := token.Role(persisted.AccessToken); ok {
		persisted.Role = role
	}

	s.replace(persisted)
	return nil
}

// Login replaces the whole session, in memory and in the keystore. An empty
// role is derived from the access token, falling back to the previously
// persisted role (the refresh response does not echo the role back).
func (s *Store) Login(accessToken, refreshToken, username, role string) error {
	if role == "" {
		if decoded, ok := token.Role(accessToken); ok {
			role = decoded
		} else {
			s.mu.RLock()
			role = s.cur.Role
			s.mu.RUnlock()
		}
	}

	sess := model.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     username,
		Role:         role,
	}

	s.replace(sess)
	return s.ks.Save(sess)
}

// Logout clears the in-memory session and all persisted fields. Storage
// errors are swallowed: logout must always leave the client logged out.
func (s *Store) Logout() {
	s.replace(model.Session{})
	_ = s.ks.Clear()
}

// Current returns a copy of the session.
func (s *Store) Current() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cur
}

func (s *Store) AccessToken() string {
	return s.Current().AccessToken
}

func (s *Store) RefreshToken() string {
	return s.Current().RefreshToken
}

func (s *Store) Username() string {
	return s.Current().Username
}

func (s *Store) Role() string {
	return s.Current().Role
}

func (s *Store) IsAuthenticated() bool {
	return s.Current().IsAuthenticated()
}

func (s *Store) IsAdmin() bool {
	return s.Current().IsAdmin()
}

func (s *Store) replace(sess model.Session) {
	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
}
