package usecase

import (
	"sync"
	"time"

	"github.com/jhoicas/manufactura-admin/internal/domain/deletepreview"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// ViewStore guarda una vista de listado y un diálogo de borrado por (sesión, recurso).
// Las vistas no se comparten entre sesiones; las inactivas más de ttl se descartan.
type ViewStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[viewKey]*viewEntry
}

type viewKey struct {
	session  string
	resource string
}

type viewEntry struct {
	view     *table.ListView
	dialog   *deletepreview.Dialog
	lastUsed time.Time
}

// NewViewStore crea el almacén. ttl <= 0 desactiva la expiración.
func NewViewStore(ttl time.Duration) *ViewStore {
	return &ViewStore{ttl: ttl, now: time.Now, entries: make(map[viewKey]*viewEntry)}
}

// View devuelve la vista de la sesión para el recurso, creándola con cfg si no existe.
func (s *ViewStore) View(sessionID, resource string, cfg func() table.ViewConfig) *table.ListView {
	return s.entry(sessionID, resource, cfg).view
}

// Dialog devuelve el diálogo de borrado de la sesión para el recurso.
func (s *ViewStore) Dialog(sessionID, resource string, cfg func() table.ViewConfig) *deletepreview.Dialog {
	return s.entry(sessionID, resource, cfg).dialog
}

// Peek devuelve la vista si existe, sin crearla.
func (s *ViewStore) Peek(sessionID, resource string) (*table.ListView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[viewKey{sessionID, resource}]
	if !ok {
		return nil, false
	}
	e.lastUsed = s.now()
	return e.view, true
}

func (s *ViewStore) entry(sessionID, resource string, cfg func() table.ViewConfig) *viewEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	k := viewKey{sessionID, resource}
	e, ok := s.entries[k]
	if !ok {
		e = &viewEntry{view: table.NewListView(cfg()), dialog: deletepreview.NewDialog()}
		s.entries[k] = e
	}
	e.lastUsed = now
	return e
}

// DropSession descarta todas las vistas de una sesión (logout).
func (s *ViewStore) DropSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if k.session == sessionID {
			delete(s.entries, k)
		}
	}
}

// Len cantidad de vistas vivas.
func (s *ViewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *ViewStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for k, e := range s.entries {
		if now.Sub(e.lastUsed) > s.ttl {
			delete(s.entries, k)
		}
	}
}
