package services

import (
	"sync"
	"time"

	"github.com/saaaathvik/consultansease/internal/models"
)

// OTPStore holds live password-reset codes keyed by email. It is
// process-local and volatile: every entry is lost on restart. A Put for
// an email that already has an entry replaces it (last writer wins).
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]models.OTPEntry
}

func NewOTPStore() *OTPStore {
	return &OTPStore{entries: make(map[string]models.OTPEntry)}
}

func (s *OTPStore) Put(email, code string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = models.OTPEntry{Code: code, ExpiresAt: expiresAt}
}

func (s *OTPStore) Get(email string) (models.OTPEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	return entry, ok
}

func (s *OTPStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}

// DeleteExpired removes every entry whose expiry is before now and
// returns how many were removed.
func (s *OTPStore) DeleteExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for email, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, email)
			removed++
		}
	}
	return removed
}
