package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"wms-backend/internal/models"
)

type fakeSectionStore struct {
	mu       sync.Mutex
	sections map[int]*models.SectionUsage
}

func newFakeSectionStore(sections ...*models.SectionUsage) *fakeSectionStore {
	s := &fakeSectionStore{sections: make(map[int]*models.SectionUsage)}
	for _, u := range sections {
		s.sections[u.SectionID] = u
	}
	return s
}

func (s *fakeSectionStore) GetUsage(_ context.Context, sectionID int) (*models.SectionUsage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.sections[sectionID]
	if !ok {
		return nil, models.ErrSectionNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeSectionStore) AddUsage(_ context.Context, sectionID, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.sections[sectionID]
	if !ok {
		return 0, models.ErrSectionNotFound
	}
	if u.IsBlocked {
		return 0, models.ErrSectionBlocked
	}
	if u.CurrentUsage+qty > u.Capacity {
		return 0, models.ErrCapacityExceeded
	}
	u.CurrentUsage += qty
	return u.CurrentUsage, nil
}

func (s *fakeSectionStore) SubUsage(_ context.Context, sectionID, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.sections[sectionID]
	if !ok {
		return 0, models.ErrSectionNotFound
	}
	u.CurrentUsage -= qty
	if u.CurrentUsage < 0 {
		u.CurrentUsage = 0
	}
	return u.CurrentUsage, nil
}

func TestReserveWithinCapacity(t *testing.T) {
	t.Parallel()

	store := newFakeSectionStore(&models.SectionUsage{SectionID: 1, Capacity: 100, CurrentUsage: 40})
	svc := NewSectionLedgerService(store)

	usage, err := svc.Reserve(context.Background(), 1, 60)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if usage != 100 {
		t.Fatalf("usage = %d, want 100", usage)
	}
}

func TestReserveRejectsOverCapacity(t *testing.T) {
	t.Parallel()

	store := newFakeSectionStore(&models.SectionUsage{SectionID: 1, Capacity: 100, CurrentUsage: 40})
	svc := NewSectionLedgerService(store)

	_, err := svc.Reserve(context.Background(), 1, 61)
	if !errors.Is(err, models.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}

	u, err := svc.GetUsage(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetUsage: %v", err)
	}
	if u.CurrentUsage != 40 {
		t.Fatalf("usage changed on rejection: %d", u.CurrentUsage)
	}
}

func TestReserveRejectsBlockedSection(t *testing.T) {
	t.Parallel()

	store := newFakeSectionStore(&models.SectionUsage{SectionID: 2, Capacity: 100, IsBlocked: true})
	svc := NewSectionLedgerService(store)

	_, err := svc.Reserve(context.Background(), 2, 1)
	if !errors.Is(err, models.ErrSectionBlocked) {
		t.Fatalf("err = %v, want ErrSectionBlocked", err)
	}
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	store := newFakeSectionStore(&models.SectionUsage{SectionID: 1, Capacity: 10})
	svc := NewSectionLedgerService(store)

	for _, qty := range []int{0, -5} {
		if _, err := svc.Reserve(context.Background(), 1, qty); err == nil {
			t.Fatalf("Reserve(%d) succeeded, want error", qty)
		}
	}
}

func TestReleaseFloorsAtZero(t *testing.T) {
	t.Parallel()

	store := newFakeSectionStore(&models.SectionUsage{SectionID: 1, Capacity: 100, CurrentUsage: 5})
	svc := NewSectionLedgerService(store)

	usage, err := svc.Release(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if usage != 0 {
		t.Fatalf("usage = %d, want 0", usage)
	}
}

func TestReserveUnknownSection(t *testing.T) {
	t.Parallel()

	svc := NewSectionLedgerService(newFakeSectionStore())
	_, err := svc.Reserve(context.Background(), 99, 1)
	if !errors.Is(err, models.ErrSectionNotFound) {
		t.Fatalf("err = %v, want ErrSectionNotFound", err)
	}
}

// Concurrent reservations must never push usage past capacity; exactly the
// reservations that fit should succeed.
func TestReserveConcurrentRespectsCapacity(t *testing.T) {
	t.Parallel()

	store := newFakeSectionStore(&models.SectionUsage{SectionID: 7, Capacity: 50})
	svc := NewSectionLedgerService(store)

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Reserve(context.Background(), 7, 5); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Fatalf("succeeded = %d, want 10", succeeded)
	}
	u, _ := svc.GetUsage(context.Background(), 7)
	if u.CurrentUsage != 50 {
		t.Fatalf("final usage = %d, want 50", u.CurrentUsage)
	}
}
