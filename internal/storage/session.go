package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// ChatSession is the state kept for one chat.
type ChatSession struct {
	Session   *service.Session
	MessageID int // quiz message edited in place, 0 when none was sent
	touched   time.Time
}

type sessionEntry struct {
	mu      sync.Mutex
	removed bool // swept while a caller waited on mu
	ChatSession
}

// SessionStorage keeps one quiz session per chat in memory.
type SessionStorage struct {
	mu      sync.RWMutex
	entries map[int64]*sessionEntry
	factory func(chatID int64) *service.Session
	now     func() time.Time
}

// NewSessionStorage creates a SessionStorage. factory builds the session
// for a chat seen for the first time.
func NewSessionStorage(factory func(chatID int64) *service.Session) *SessionStorage {
	return &SessionStorage{
		entries: make(map[int64]*sessionEntry),
		factory: factory,
		now:     time.Now,
	}
}

// With runs fn with exclusive access to the chat's session, creating it
// when missing. Calls for different chats run in parallel. fn must not call
// Delete for the same chat.
func (s *SessionStorage) With(chatID int64, fn func(cs *ChatSession) error) error {
	for {
		if ok, err := s.run(s.entry(chatID), fn); ok {
			return err
		}
	}
}

// run reports ok=false when the entry was removed before the lock was taken.
func (s *SessionStorage) run(entry *sessionEntry, fn func(cs *ChatSession) error) (bool, error) {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed {
		return false, nil
	}

	entry.touched = s.now()
	return true, fn(&entry.ChatSession)
}

func (s *SessionStorage) entry(chatID int64) *sessionEntry {
	s.mu.RLock()
	entry, ok := s.entries[chatID]
	s.mu.RUnlock()
	if ok {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[chatID]; ok {
		return entry
	}
	entry = &sessionEntry{ChatSession: ChatSession{Session: s.factory(chatID)}}
	s.entries[chatID] = entry
	return entry
}

// Has reports whether the chat has a stored session.
func (s *SessionStorage) Has(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[chatID]
	return ok
}

// Delete removes the chat's session.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	entry, ok := s.entries[chatID]
	delete(s.entries, chatID)
	s.mu.Unlock()

	if ok {
		entry.mu.Lock()
		entry.removed = true
		entry.mu.Unlock()
	}
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes sessions last used before cutoff and returns how many were
// removed. Sessions in use are skipped.
func (s *SessionStorage) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for chatID, entry := range s.entries {
		if !entry.mu.TryLock() {
			continue
		}
		if entry.touched.Before(cutoff) {
			entry.removed = true
			delete(s.entries, chatID)
			removed++
		}
		entry.mu.Unlock()
	}
	return removed
}
