package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"wms-backend/internal/metrics"
	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
)

// ReconcileStore runs a batch of inventory mutations in one transaction.
type ReconcileStore interface {
	WithinTx(ctx context.Context, fn func(repositories.ReconcileTx) error) error
}

// ReconcilerService turns putaway assignments, stock moves, and transfers
// into consistent product, section-inventory, and capacity updates. Every
// batch commits fully or not at all.
type ReconcilerService struct {
	store ReconcileStore
}

func NewReconcilerService(store ReconcileStore) *ReconcilerService {
	return &ReconcilerService{store: store}
}

// ReconcilePutaway places an arrival's items into sections. Each item must be
// allocated in full across its assignments; received quantities are credited
// to products by name, section capacity is reserved per section, inventory
// rows are merged, and the placed stock is deducted from the unallocated
// pool.
func (s *ReconcilerService) ReconcilePutaway(ctx context.Context, clientID int, items []*models.TruckItem, assignments []models.PutawayAssignment, notes string) error {
	if len(assignments) == 0 {
		return errors.New("no putaway assignments submitted")
	}

	itemsByID := make(map[int]*models.TruckItem, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}

	assigned := make(map[int]int, len(items))
	for _, a := range assignments {
		if a.Quantity < 1 {
			return fmt.Errorf("assignment for item %d has quantity %d, must be at least 1", a.TruckItemID, a.Quantity)
		}
		it, ok := itemsByID[a.TruckItemID]
		if !ok {
			return fmt.Errorf("assignment references unknown item %d", a.TruckItemID)
		}
		assigned[a.TruckItemID] += a.Quantity
		if assigned[a.TruckItemID] > it.Quantity {
			return fmt.Errorf("item %d over-allocated: %d assigned of %d received", it.ID, assigned[it.ID], it.Quantity)
		}
	}
	for _, it := range itemsByID {
		if assigned[it.ID] != it.Quantity {
			return fmt.Errorf("item %d under-allocated: %d assigned of %d received", it.ID, assigned[it.ID], it.Quantity)
		}
	}

	// Credit full received quantity per product name, then deduct what was
	// placed; the two cancel, so unallocated stock stays unchanged while the
	// product record still absorbs new names idempotently.
	creditByName := make(map[string]int)
	for _, it := range items {
		creditByName[it.Description] += it.Quantity
	}
	credits := make([]models.ProductCredit, 0, len(creditByName))
	for _, name := range sortedKeys(creditByName) {
		credits = append(credits, models.ProductCredit{Name: name, Quantity: creditByName[name]})
	}

	bySection := make(map[int]int)
	for _, a := range assignments {
		bySection[a.SectionID] += a.Quantity
	}

	err := s.store.WithinTx(ctx, func(tx repositories.ReconcileTx) error {
		productIDs, err := tx.ResolveProducts(ctx, clientID, credits)
		if err != nil {
			return err
		}

		for _, sectionID := range sortedIntKeys(bySection) {
			if err := tx.ReserveSection(ctx, sectionID, bySection[sectionID]); err != nil {
				return fmt.Errorf("section %d: %w", sectionID, err)
			}
		}

		type placement struct{ sectionID, productID int }
		merged := make(map[placement]int)
		for _, a := range assignments {
			it := itemsByID[a.TruckItemID]
			merged[placement{a.SectionID, productIDs[it.Description]}] += a.Quantity
		}
		for p, qty := range merged {
			if err := tx.MergeSectionInventory(ctx, p.sectionID, p.productID, qty, notes); err != nil {
				return err
			}
		}

		for _, name := range sortedKeys(creditByName) {
			if err := tx.DeductProductStock(ctx, productIDs[name], creditByName[name]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.PutawayBatchesTotal.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.PutawayBatchesTotal.WithLabelValues("committed").Inc()
	return nil
}

// MoveToSection moves unallocated product stock into one section.
func (s *ReconcilerService) MoveToSection(ctx context.Context, productID, sectionID, qty int, notes string) error {
	if qty < 1 {
		return fmt.Errorf("move quantity must be at least 1, got %d", qty)
	}
	return s.store.WithinTx(ctx, func(tx repositories.ReconcileTx) error {
		if err := tx.ReserveSection(ctx, sectionID, qty); err != nil {
			return err
		}
		if err := tx.MergeSectionInventory(ctx, sectionID, productID, qty, notes); err != nil {
			return err
		}
		return tx.DeductProductStock(ctx, productID, qty)
	})
}

// Transfer moves stock between two sections, releasing capacity on the
// source and reserving it on the destination.
func (s *ReconcilerService) Transfer(ctx context.Context, req *models.TransferStockRequest) error {
	if req.Quantity < 1 {
		return fmt.Errorf("transfer quantity must be at least 1, got %d", req.Quantity)
	}
	if req.FromSectionID == req.ToSectionID {
		return errors.New("source and destination sections are the same")
	}
	return s.store.WithinTx(ctx, func(tx repositories.ReconcileTx) error {
		if err := tx.DeductSectionInventory(ctx, req.FromSectionID, req.ProductID, req.Quantity); err != nil {
			return err
		}
		if err := tx.ReleaseSection(ctx, req.FromSectionID, req.Quantity); err != nil {
			return err
		}
		if err := tx.ReserveSection(ctx, req.ToSectionID, req.Quantity); err != nil {
			return err
		}
		return tx.MergeSectionInventory(ctx, req.ToSectionID, req.ProductID, req.Quantity, req.Notes)
	})
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
