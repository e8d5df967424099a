package wizard

import (
	"sync"
	"time"
)

// Store keeps at most one wizard per browser session, evicting the least
// recently used session when full and discarding sessions idle past the TTL.
// Expiry is what bounds abandoned drafts: once an entry is gone, a late
// response from the backend has nothing left to mutate.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	entries map[string]*storeEntry
}

type storeEntry struct {
	wizard   *Wizard
	expires  time.Time
	lastUsed time.Time
}

// NewStore builds a session store holding at most maxSize wizards, each
// expiring after ttl of inactivity.
func NewStore(ttl time.Duration, maxSize int) *Store {
	return &Store{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]*storeEntry),
	}
}

// Get returns the session's wizard and bumps its expiry. Expired entries are
// treated as absent and removed.
func (s *Store) Get(sessionID string) (*Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return nil, false
	}
	now := time.Now()
	if now.After(entry.expires) {
		delete(s.entries, sessionID)
		return nil, false
	}
	entry.expires = now.Add(s.ttl)
	entry.lastUsed = now
	return entry.wizard, true
}

// Put stores the session's wizard, evicting the least recently used entry
// when the store is full.
func (s *Store) Put(sessionID string, w *Wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if _, exists := s.entries[sessionID]; !exists && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}
	s.entries[sessionID] = &storeEntry{
		wizard:   w,
		expires:  now.Add(s.ttl),
		lastUsed: now,
	}
}

// Delete removes a session outright, e.g. after a completed or cancelled
// sale.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// CleanExpired drops every expired session and returns how many were
// removed. Run it periodically so abandoned drafts do not sit in memory
// until their slot is needed.
func (s *Store) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// evictOldest removes the least recently used entry. Callers hold s.mu.
func (s *Store) evictOldest() {
	var oldestID string
	var oldestTime time.Time
	first := true
	for id, entry := range s.entries {
		if first || entry.lastUsed.Before(oldestTime) {
			oldestID = id
			oldestTime = entry.lastUsed
			first = false
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
	}
}
