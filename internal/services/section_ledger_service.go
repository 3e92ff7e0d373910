package services

import (
	"context"
	"fmt"
	"sync"

	"wms-backend/internal/metrics"
	"wms-backend/internal/models"
)

// SectionUsageStore is the slice of the section repository the ledger needs.
type SectionUsageStore interface {
	GetUsage(ctx context.Context, sectionID int) (*models.SectionUsage, error)
	AddUsage(ctx context.Context, sectionID, qty int) (int, error)
	SubUsage(ctx context.Context, sectionID, qty int) (int, error)
}

// SectionLedgerService serializes capacity changes per section and enforces
// the usage <= capacity bound. The conditional UPDATE in the store enforces
// the same bound again for writers outside this process.
type SectionLedgerService struct {
	store SectionUsageStore

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewSectionLedgerService(store SectionUsageStore) *SectionLedgerService {
	return &SectionLedgerService{
		store: store,
		locks: make(map[int]*sync.Mutex),
	}
}

func (s *SectionLedgerService) lockSection(sectionID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sectionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sectionID] = l
	}
	return l
}

func (s *SectionLedgerService) GetUsage(ctx context.Context, sectionID int) (*models.SectionUsage, error) {
	return s.store.GetUsage(ctx, sectionID)
}

// Reserve claims qty units of a section's capacity. On rejection the section
// state is left unchanged.
func (s *SectionLedgerService) Reserve(ctx context.Context, sectionID, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("reserve quantity must be positive, got %d", qty)
	}

	l := s.lockSection(sectionID)
	l.Lock()
	defer l.Unlock()

	u, err := s.store.GetUsage(ctx, sectionID)
	if err != nil {
		return 0, err
	}
	if u.IsBlocked {
		return 0, fmt.Errorf("%w: section %d", models.ErrSectionBlocked, sectionID)
	}
	if u.CurrentUsage+qty > u.Capacity {
		metrics.CapacityRejectionsTotal.Inc()
		return 0, fmt.Errorf("%w: section %d holds %d of %d, cannot add %d",
			models.ErrCapacityExceeded, sectionID, u.CurrentUsage, u.Capacity, qty)
	}
	return s.store.AddUsage(ctx, sectionID, qty)
}

// Release returns qty units to a section, flooring usage at zero.
func (s *SectionLedgerService) Release(ctx context.Context, sectionID, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("release quantity must be positive, got %d", qty)
	}

	l := s.lockSection(sectionID)
	l.Lock()
	defer l.Unlock()

	return s.store.SubUsage(ctx, sectionID, qty)
}
