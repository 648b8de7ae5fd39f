package view

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vatne/archmap/pkg/layout"
	"github.com/vatne/archmap/pkg/model"
)

// Session is one client's live view state, identified by a server-issued
// id. Sessions are ephemeral: they reset to the layout output on Reset and
// disappear entirely on server restart.
type Session struct {
	ID    string `json:"id"`
	State State  `json:"state"`
}

// Manager owns all sessions for one topology/layout pair. All access goes
// through the manager so change application is serialized per process.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	reducer  *Reducer
	initial  *layout.Result
}

// NewManager creates a session manager. The layout result is the canonical
// initial state for every new or reset session.
func NewManager(t *model.Topology, l *layout.Result) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		reducer:  NewReducer(t),
		initial:  l,
	}
}

// Create starts a new session with pristine layout positions.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:    uuid.New().String(),
		State: NewState(m.initial),
	}
	m.sessions[s.ID] = s
	return s
}

// Get returns a snapshot of the session.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("unknown session %q", id)
	}
	return Session{ID: s.ID, State: s.State.clone()}, nil
}

// Apply runs a change list against the session and returns the new state.
// A failed list leaves the session unchanged.
func (m *Manager) Apply(id string, changes []Change) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("unknown session %q", id)
	}
	next, err := m.reducer.Apply(s.State, changes)
	if err != nil {
		return Session{}, err
	}
	s.State = next
	return Session{ID: s.ID, State: next.clone()}, nil
}

// Reset restores the session to the layout engine's output, the same as a
// fresh mount.
func (m *Manager) Reset(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("unknown session %q", id)
	}
	s.State = NewState(m.initial)
	return Session{ID: s.ID, State: s.State.clone()}, nil
}

// Delete drops the session. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Rebind swaps in a new topology and layout after a reload and resets every
// session to the new initial state, the remount contract for a changed
// configuration.
func (m *Manager) Rebind(t *model.Topology, l *layout.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reducer = NewReducer(t)
	m.initial = l
	for _, s := range m.sessions {
		s.State = NewState(l)
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
