package controller

import (
	"sync"
	"time"

	"go-shakti-admin/pkg/crypt"

	"go.uber.org/zap"
)

type managed struct {
	ctl      *Controller
	lastUsed time.Time
}

// Manager hands out one controller per session for a given page config, so
// two operators never share list or form state. Entries idle longer than the
// session lifetime are evicted, covering sessions that lapse without an
// explicit logout.
type Manager struct {
	mu     sync.Mutex
	cfg    Config
	sealer *crypt.Sealer
	log    *zap.Logger
	ttl    time.Duration
	now    func() time.Time
	active map[string]*managed
}

func NewManager(cfg Config, sealer *crypt.Sealer, log *zap.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		sealer: sealer,
		log:    log,
		ttl:    time.Hour,
		now:    time.Now,
		active: make(map[string]*managed),
	}
}

// For returns the session's controller, creating it on first use.
func (m *Manager) For(sessionID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.active {
		if now.Sub(e.lastUsed) > m.ttl {
			delete(m.active, id)
		}
	}

	e, ok := m.active[sessionID]
	if !ok {
		e = &managed{ctl: New(m.cfg, m.sealer, m.log)}
		m.active[sessionID] = e
	}
	e.lastUsed = now
	return e.ctl
}

// Drop releases a session's controller (logout, revocation).
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, sessionID)
}
