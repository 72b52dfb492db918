package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"fleet-dashboard-service/internal/model"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*Store, *clock) {
	c := &clock{t: time.Date(2025, 3, 22, 8, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = c.now
	return s, c
}

func setModal(s *Store, id uuid.UUID, m model.DrillDownModal) {
	_, _ = s.UpdateModal(id, func(*model.DashboardResult, model.DrillDownModal) (model.DrillDownModal, error) {
		return m, nil
	})
}

func TestStoreBundleBeforeSave(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	if _, ok := s.Bundle(uuid.New()); ok {
		t.Errorf("Bundle() on unknown session reported ok")
	}
}

func TestStoreSaveReplacesBundle(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id := uuid.New()
	first := &model.DashboardResult{Date: time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)}
	second := &model.DashboardResult{Date: time.Date(2025, 3, 23, 0, 0, 0, 0, time.UTC)}

	s.Save(id, first)
	s.Save(id, second)

	got, ok := s.Bundle(id)
	if !ok || got != second {
		t.Errorf("Bundle() = %v, %v, expected the second bundle", got, ok)
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	a, b := uuid.New(), uuid.New()

	s.Save(a, &model.DashboardResult{})
	setModal(s, a, model.DrillDownModal{}.Open(model.DirectionDispatch, 9, nil))

	if _, ok := s.Bundle(b); ok {
		t.Errorf("session b sees session a's bundle")
	}
	if s.Modal(b).IsOpen() {
		t.Errorf("session b sees session a's modal")
	}
	if !s.Modal(a).IsOpen() {
		t.Errorf("session a modal should be open")
	}
}

func TestStoreModalDefaultsToClosed(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	m := s.Modal(uuid.New())
	if m.State != model.ModalClosed {
		t.Errorf("State = %q, expected %q", m.State, model.ModalClosed)
	}
	if m.Rows == nil {
		t.Errorf("Rows = nil, expected empty")
	}
}

func TestStoreSaveKeepsModal(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id := uuid.New()
	setModal(s, id, model.DrillDownModal{}.Open(model.DirectionReturn, 17, nil))

	s.Save(id, &model.DashboardResult{})

	m := s.Modal(id)
	if !m.IsOpen() || m.Hour != 17 {
		t.Errorf("modal = %+v, expected open at 17", m)
	}
}

func TestStorePrunesIdleSessions(t *testing.T) {
	s, c := newTestStore(30 * time.Minute)
	idle, active := uuid.New(), uuid.New()
	s.Save(idle, &model.DashboardResult{})
	s.Save(active, &model.DashboardResult{})

	c.t = c.t.Add(20 * time.Minute)
	s.Bundle(active)
	c.t = c.t.Add(20 * time.Minute)

	if _, ok := s.Bundle(idle); ok {
		t.Errorf("idle session survived past its ttl")
	}
	if _, ok := s.Bundle(active); !ok {
		t.Errorf("active session was pruned")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}

func TestStoreZeroTTLNeverPrunes(t *testing.T) {
	s, c := newTestStore(0)
	id := uuid.New()
	s.Save(id, &model.DashboardResult{})

	c.t = c.t.Add(24 * time.Hour)

	if _, ok := s.Bundle(id); !ok {
		t.Errorf("session pruned with ttl disabled")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(time.Minute)
	id := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(hour int) {
			defer wg.Done()
			s.Save(id, &model.DashboardResult{})
			setModal(s, id, model.DrillDownModal{}.Open(model.DirectionDispatch, hour, nil))
			s.Bundle(id)
			s.Modal(id)
		}(i)
	}
	wg.Wait()

	if !s.Modal(id).IsOpen() {
		t.Errorf("modal should be open after concurrent opens")
	}
}

func TestStoreClear(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id := uuid.New()
	s.Save(id, &model.DashboardResult{})
	setModal(s, id, model.DrillDownModal{}.Open(model.DirectionDispatch, 9, nil))

	s.Clear(id)

	if _, ok := s.Bundle(id); ok {
		t.Errorf("bundle survived Clear")
	}
	if !s.Modal(id).IsOpen() {
		t.Errorf("Clear should leave the modal alone")
	}

	s.Clear(uuid.New())
	if s.Len() != 1 {
		t.Errorf("Clear on an unknown session created an entry")
	}
}

func TestStoreUpdateModal(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id := uuid.New()
	bundle := &model.DashboardResult{}

	_, _ = s.UpdateModal(id, func(got *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error) {
		if got != nil {
			t.Errorf("bundle = %v before any save, expected nil", got)
		}
		if current.State != model.ModalClosed {
			t.Errorf("current state = %q, expected CLOSED", current.State)
		}
		return current, nil
	})

	s.Save(id, bundle)
	opened, err := s.UpdateModal(id, func(got *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error) {
		if got != bundle {
			t.Errorf("fn received %v, expected the saved bundle", got)
		}
		return current.Open(model.DirectionReturn, 8, nil), nil
	})
	if err != nil || !opened.IsOpen() {
		t.Fatalf("UpdateModal = %+v, %v", opened, err)
	}

	boom := errors.New("boom")
	if _, err := s.UpdateModal(id, func(_ *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error) {
		return current.Close(), boom
	}); !errors.Is(err, boom) {
		t.Errorf("err = %v, expected %v", err, boom)
	}
	if !s.Modal(id).IsOpen() {
		t.Errorf("failed update changed the modal")
	}
}

func TestStoreUpdateModalSerializesOpenAndClose(t *testing.T) {
	s := NewStore(time.Minute)
	id := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.UpdateModal(id, func(_ *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error) {
				return current.Open(model.DirectionDispatch, 9, nil), nil
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.UpdateModal(id, func(_ *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error) {
				return current.Close(), nil
			})
		}()
	}
	wg.Wait()

	_, _ = s.UpdateModal(id, func(_ *model.DashboardResult, current model.DrillDownModal) (model.DrillDownModal, error) {
		return current.Close(), nil
	})
	if s.Modal(id).IsOpen() {
		t.Errorf("a close issued after every open left the modal open")
	}
}
