package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/gaurav-prasanna/luxescript/core"
)

// workspace is one browser session: the latest formatted fragment, the book
// metadata, and the in-flight flags for formatting and PDF export.
type workspace struct {
	mu         sync.Mutex
	fragment   string
	metadata   core.BookMetadata
	generation uint64
	formatting bool
	exporting  bool
}

func newWorkspace(meta core.BookMetadata) *workspace {
	return &workspace{metadata: meta}
}

// beginFormat claims the formatting slot and returns the generation the
// result must carry. ok is false while another format is in flight.
func (w *workspace) beginFormat() (gen uint64, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.formatting {
		return 0, false
	}
	w.formatting = true
	w.generation++
	return w.generation, true
}

// finishFormat releases the slot. A fragment is stored only when gen is still
// the latest generation; it reports whether the fragment was kept.
func (w *workspace) finishFormat(gen uint64, fragment string, store bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.formatting = false
	if !store || gen != w.generation {
		return false
	}
	w.fragment = fragment
	return true
}

func (w *workspace) beginExport() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.exporting {
		return false
	}
	w.exporting = true
	return true
}

func (w *workspace) finishExport() {
	w.mu.Lock()
	w.exporting = false
	w.mu.Unlock()
}

// snapshot copies the fragment and metadata for an export.
func (w *workspace) snapshot() (string, core.BookMetadata, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fragment, w.metadata, w.generation
}

func (w *workspace) setMetadata(meta core.BookMetadata) {
	w.mu.Lock()
	w.metadata = meta
	w.mu.Unlock()
}

// sessionStore keeps workspaces in a go-cache with idle expiry.
type sessionStore struct {
	cache    *cache.Cache
	ttl      time.Duration
	defaults core.BookMetadata
}

func newSessionStore(ttl time.Duration, defaults core.BookMetadata) *sessionStore {
	return &sessionStore{
		cache:    cache.New(ttl, time.Hour),
		ttl:      ttl,
		defaults: defaults,
	}
}

func newSessionID() string {
	return uuid.New().String()
}

// get returns the workspace for id, creating it on first use, and resets its
// idle timer.
func (s *sessionStore) get(id string) *workspace {
	if v, ok := s.cache.Get(id); ok {
		ws := v.(*workspace)
		s.cache.Set(id, ws, cache.DefaultExpiration)
		return ws
	}
	ws := newWorkspace(s.defaults)
	if err := s.cache.Add(id, ws, cache.DefaultExpiration); err != nil {
		// another request created it first
		if v, ok := s.cache.Get(id); ok {
			return v.(*workspace)
		}
	}
	return ws
}

func (s *sessionStore) count() int {
	return s.cache.ItemCount()
}
