// Package site owns the page lifecycle of the test site. Each page load
// builds and initializes a fresh notifier and keeps it as the current page
// for inspection.
package site

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harrylevesque/freqgraphs/internal/notifier"
)

// Page is one loaded page session.
type Page struct {
	SessionID string
	LoadedAt  time.Time
	Notifier  *notifier.Notifier
}

// Snapshot is the JSON view of a page returned by the debug endpoint.
type Snapshot struct {
	SessionID string            `json:"session_id"`
	LoadedAt  time.Time         `json:"loaded_at"`
	State     notifier.State    `json:"state"`
	Devices   []notifier.Device `json:"devices"`
}

func (p *Page) Snapshot() Snapshot {
	return Snapshot{
		SessionID: p.SessionID,
		LoadedAt:  p.LoadedAt,
		State:     p.Notifier.State(),
		Devices:   p.Notifier.Devices(),
	}
}

type Site struct {
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current *Page
	loads   int
}

// New returns a Site whose notifiers write to logger.
func New(logger *zap.Logger) *Site {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Site{logger: logger, now: time.Now}
}

// Load handles a page load: it constructs a notifier, initializes it and
// makes it the current page.
func (s *Site) Load() *Page {
	id := uuid.New().String()
	n := notifier.New(s.logger.With(zap.String("session_id", id)))
	n.Initialize()

	p := &Page{
		SessionID: id,
		LoadedAt:  s.now().UTC(),
		Notifier:  n,
	}

	s.mu.Lock()
	s.current = p
	s.loads++
	s.mu.Unlock()
	return p
}

// Current returns the most recently loaded page. ok is false until the
// first load.
func (s *Site) Current() (p *Page, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Loads reports how many page loads the site has handled.
func (s *Site) Loads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}
