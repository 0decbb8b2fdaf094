package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"persona-chat/internal/llm"
	"persona-chat/internal/persona"
	"persona-chat/internal/storage"
)

// Manager hands out sessions keyed by ID and serializes turn processing per
// session. Each session has a single writer; the map itself is guarded for
// concurrent HTTP handlers.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store    *persona.Store
	client   llm.Client
	recorder storage.Recorder
	maxTurns int
}

func NewManager(store *persona.Store, client llm.Client, recorder storage.Recorder, maxTurns int) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		client:   client,
		recorder: recorder,
		maxTurns: maxTurns,
	}
}

// Ensure returns the session for id, creating it if needed. An empty id
// allocates a fresh session with a random identifier.
func (m *Manager) Ensure(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == "" {
		id = newSessionID()
	}
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := New(id, m.store, m.client, m.recorder, m.maxTurns)
	m.sessions[id] = s
	return s
}

// Get returns an existing session or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Reset discards a session's state entirely.
func (m *Manager) Reset(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand read failures are not recoverable here
		panic(err)
	}
	return hex.EncodeToString(b)
}
