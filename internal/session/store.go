// Package session holds the transient per-login document state: the extracted
// text of the currently loaded contract, the latest report and the Q&A
// transcript. Sessions live in process memory only and are destroyed on
// logout or when the user analyses a new document.
package session

import (
	"sync"
	"time"

	"legalai-review/internal/ai"
)

type DocumentSession struct {
	UserID       uint
	Filename     string
	DocumentText string
	LastReport   string
	Transcript   []ai.ChatMessage
	StartedAt    time.Time
}

// Store keeps at most one active document session per user.
type Store struct {
	mu       sync.RWMutex
	sessions map[uint]*DocumentSession
}

func NewStore() *Store {
	return &Store{sessions: make(map[uint]*DocumentSession)}
}

// Start creates the session for the user, replacing any previous one. Starting
// a new document always discards the old transcript.
func (s *Store) Start(userID uint, filename, documentText, report string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &DocumentSession{
		UserID:       userID,
		Filename:     filename,
		DocumentText: documentText,
		LastReport:   report,
		StartedAt:    time.Now(),
	}
}

// Get returns a copy of the user's active session.
func (s *Store) Get(userID uint) (DocumentSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return DocumentSession{}, false
	}
	copied := *sess
	copied.Transcript = append([]ai.ChatMessage(nil), sess.Transcript...)
	return copied, true
}

// AppendTurns appends transcript turns to the user's active session. Returns
// false when no session is active.
func (s *Store) AppendTurns(userID uint, turns ...ai.ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return false
	}
	sess.Transcript = append(sess.Transcript, turns...)
	return true
}

// Clear drops the user's session, if any.
func (s *Store) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
