package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ggAnalyze/internal/store"
)

// Session scopes one client's upload registry. All sessions share the same
// upload directory: files are retained on disk across sessions, so a new
// session starts with the previously uploaded files already listed.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
	Registry  *store.Registry
}

type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	uploadDir string
	ttl       time.Duration
}

func NewManager(uploadDir string, ttl time.Duration) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		uploadDir: uploadDir,
		ttl:       ttl,
	}
}

func (m *Manager) Create() (*Session, error) {
	reg, err := store.NewRegistry(m.uploadDir)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(m.ttl),
		Registry:  reg,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns an active session and extends its expiry on use.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, id)
		return nil, false
	}
	s.ExpiresAt = time.Now().Add(m.ttl)
	return s, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Active lists the live sessions.
func (m *Manager) Active() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// CleanupExpired drops sessions past their expiry; uploaded files stay on
// disk for the next session.
func (m *Manager) CleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
