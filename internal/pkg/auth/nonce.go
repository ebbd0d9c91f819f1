package auth

import (
	"strings"
	"sync"
	"time"
)

// NonceStore keeps short-lived login challenges keyed by wallet address.
// Challenges are single-use: Consume removes the nonce whether or not the
// subsequent signature check succeeds.
type NonceStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	nonces map[string]nonceEntry
}

type nonceEntry struct {
	nonce     string
	expiresAt time.Time
}

// NewNonceStore creates a nonce store with the given challenge lifetime.
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{
		ttl:    ttl,
		nonces: make(map[string]nonceEntry),
	}
}

// Put stores a fresh nonce for the address, replacing any previous one.
func (s *NonceStore) Put(address, nonce string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nonces[strings.ToLower(address)] = nonceEntry{
		nonce:     nonce,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Consume removes and returns the nonce for the address. The second return
// value is false if no unexpired nonce exists.
func (s *NonceStore) Consume(address string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(address)
	entry, ok := s.nonces[key]
	if !ok {
		return "", false
	}

	delete(s.nonces, key)

	if time.Now().After(entry.expiresAt) {
		return "", false
	}

	return entry.nonce, true
}
