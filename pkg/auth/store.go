// Package auth manages the upstream credential pair and the
// refresh-and-retry authentication flow around authenticated requests.
package auth

import "sync"

// Credentials is an access/refresh token pair issued by the upstream auth
// endpoints. A pair is always replaced as a whole, never field by field.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// TokenStore holds the current credential pair for concurrent use.
// The zero value is an empty, unauthenticated store.
type TokenStore struct {
	mu    sync.RWMutex
	creds Credentials
}

// Current returns the held credential pair.
func (s *TokenStore) Current() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Replace swaps in a new credential pair wholesale.
func (s *TokenStore) Replace(creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
}

// Clear drops the held credential pair.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
}
