// Package memory contains in-process repository implementations
package memory

import (
	"sync"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/entities"
)

// SessionStore implements deps.SessionStore with a mutex-guarded map.
// Entries are created on the first resolved link for a chat, overwritten on
// every subsequent one and never expired; a remembered title can go stale
// across unrelated links, which download handling tolerates.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*entities.Session),
	}
}

// Remember stores the last resolved title for a chat
func (s *SessionStore) Remember(chatID int64, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok {
		session = &entities.Session{}
		s.sessions[chatID] = session
	}
	session.LastTitle = title
}

// LastTitle returns the remembered title for a chat
func (s *SessionStore) LastTitle(chatID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok || session.LastTitle == "" {
		return "", false
	}
	return session.LastTitle, true
}
