package repository

import (
	"errors"
	"log"
	"sync"

	"coachhub/models"
)

// SessionRepository holds live diagnosis chat sessions. Transcripts are
// in-memory only; they are not persisted across restarts.
type SessionRepository interface {
	Create(session *models.DiagnosisSession) error
	Get(sessionID string) (*models.DiagnosisSession, error)
	Update(session *models.DiagnosisSession) error
	Delete(sessionID string)
}

type sessionRepository struct {
	sessions map[string]*models.DiagnosisSession
	mu       sync.RWMutex
}

// NewSessionRepository creates an in-memory SessionRepository.
func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*models.DiagnosisSession),
	}
}

func (r *sessionRepository) Create(session *models.DiagnosisSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	r.sessions[session.ID] = session
	log.Printf("INFO: [SessionRepository] Created session %s for user '%s'.", session.ID, session.UserID)
	return nil
}

// Get returns the session, or nil if it does not exist. Absence is a valid
// non-error result.
func (r *sessionRepository) Get(sessionID string) (*models.DiagnosisSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		log.Printf("INFO: [SessionRepository] Session '%s' not found.", sessionID)
		return nil, nil
	}
	return session, nil
}

func (r *sessionRepository) Update(session *models.DiagnosisSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; !exists {
		return errors.New("cannot update a session that does not exist")
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *sessionRepository) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}
