package engine

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/model"
)

// Manager is the registry of live watch sessions, keyed by session ID.
// Each device gets its own session (no cross-device locking); the only
// shared durable state is the certification store.
type Manager struct {
	clk   clockwork.Clock
	log   zerolog.Logger
	hooks Hooks

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager. Pass clockwork.NewRealClock()
// in production; tests inject a fake clock so no real timers fire.
func NewManager(clk clockwork.Clock, log zerolog.Logger) *Manager {
	return &Manager{
		clk:      clk,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// SetHooks installs engine observation hooks. Call before Start.
func (m *Manager) SetHooks(h Hooks) { m.hooks = h }

// Start opens a watch session for a user in a room over the given
// playlist. A non-empty deepLinkVideoID is resolved against the list
// before the tick source starts; an unknown ID silently leaves the
// cursor at 0.
func (m *Manager) Start(roomID, userID string, videos []model.Video, deepLinkVideoID string) *Session {
	s := newSession(uuid.NewString(), roomID, userID, videos, m.clk, m.log, m.hooks)
	if deepLinkVideoID != "" {
		s.SelectExternal(deepLinkVideoID)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	go s.run()

	m.log.Debug().
		Str("room_id", roomID).
		Str("session_id", s.ID).
		Int("playlist_len", len(videos)).
		Msg("session started")
	return s
}

// Get returns the live session with the given ID.
func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	return s, ok
}

// Close tears down and removes a session. Returns whether it existed.
func (m *Manager) Close(sessionID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}

// ActiveCount returns the number of live sessions.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll tears down every live session (server shutdown).
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
