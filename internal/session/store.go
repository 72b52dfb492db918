package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"fleet-dashboard-service/internal/model"
)

type entry struct {
	bundle   *model.DashboardResult
	modal    model.DrillDownModal
	lastSeen time.Time
}

// Store keeps the latest dashboard bundle and the drill-down modal of every
// browser session. Idle sessions are pruned lazily on access.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]*entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]*entry),
	}
}

// Save replaces the session bundle. The modal is left as it is.
func (s *Store) Save(id uuid.UUID, bundle *model.DashboardResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch(id).bundle = bundle
}

// Bundle returns the last computed bundle, or false if the session never
// completed a query.
func (s *Store) Bundle(id uuid.UUID) (*model.DashboardResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(id)
	if e == nil || e.bundle == nil {
		return nil, false
	}
	return e.bundle, true
}

// Clear drops the session bundle, so drill-downs fail until the next
// completed query. The modal is left as it is.
func (s *Store) Clear(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e := s.lookup(id); e != nil {
		e.bundle = nil
	}
}

func (s *Store) Modal(id uuid.UUID) model.DrillDownModal {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(id)
	if e == nil {
		return model.DrillDownModal{}.Normalize()
	}
	return e.modal.Normalize()
}

// UpdateModal replaces the session modal with the result of fn, holding the
// lock for the whole read-modify-write. bundle is nil when the session has
// no completed query. An error from fn leaves the modal unchanged.
func (s *Store) UpdateModal(id uuid.UUID, fn func(bundle *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error)) (model.DrillDownModal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.touch(id)
	next, err := fn(e.bundle, e.modal.Normalize())
	if err != nil {
		return model.DrillDownModal{}, err
	}
	e.modal = next
	return next, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	return len(s.entries)
}

// lookup returns the live entry for id and refreshes it. Callers hold mu.
func (s *Store) lookup(id uuid.UUID) *entry {
	s.prune()
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	e.lastSeen = s.now()
	return e
}

func (s *Store) touch(id uuid.UUID) *entry {
	if e := s.lookup(id); e != nil {
		return e
	}
	e := &entry{modal: model.DrillDownModal{}.Close(), lastSeen: s.now()}
	s.entries[id] = e
	return e
}

func (s *Store) prune() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
