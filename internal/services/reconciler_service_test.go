package services

import (
	"context"
	"errors"
	"testing"

	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
)

// fakeReconcileStore implements transactional semantics by working on a copy
// of its state and swapping it in only when the callback succeeds.
type fakeReconcileStore struct {
	state *reconcileState
}

type reconcileState struct {
	nextProductID int
	products      map[string]*fakeProduct // by name
	sections      map[int]*models.SectionUsage
	sectionInv    map[[2]int]int // (sectionID, productID) -> qty
}

type fakeProduct struct {
	id  int
	qty int
}

func newFakeReconcileStore(sections ...*models.SectionUsage) *fakeReconcileStore {
	st := &reconcileState{
		nextProductID: 1,
		products:      make(map[string]*fakeProduct),
		sections:      make(map[int]*models.SectionUsage),
		sectionInv:    make(map[[2]int]int),
	}
	for _, s := range sections {
		st.sections[s.SectionID] = s
	}
	return &fakeReconcileStore{state: st}
}

func (s *fakeReconcileStore) clone() *reconcileState {
	cp := &reconcileState{
		nextProductID: s.state.nextProductID,
		products:      make(map[string]*fakeProduct, len(s.state.products)),
		sections:      make(map[int]*models.SectionUsage, len(s.state.sections)),
		sectionInv:    make(map[[2]int]int, len(s.state.sectionInv)),
	}
	for name, p := range s.state.products {
		pc := *p
		cp.products[name] = &pc
	}
	for id, sec := range s.state.sections {
		sc := *sec
		cp.sections[id] = &sc
	}
	for k, v := range s.state.sectionInv {
		cp.sectionInv[k] = v
	}
	return cp
}

func (s *fakeReconcileStore) WithinTx(_ context.Context, fn func(repositories.ReconcileTx) error) error {
	next := s.clone()
	if err := fn(&fakeReconcileTx{state: next}); err != nil {
		return err
	}
	s.state = next
	return nil
}

type fakeReconcileTx struct {
	state *reconcileState
}

func (t *fakeReconcileTx) ResolveProducts(_ context.Context, _ int, credits []models.ProductCredit) (map[string]int, error) {
	ids := make(map[string]int, len(credits))
	for _, c := range credits {
		p, ok := t.state.products[c.Name]
		if !ok {
			p = &fakeProduct{id: t.state.nextProductID}
			t.state.nextProductID++
			t.state.products[c.Name] = p
		}
		p.qty += c.Quantity
		ids[c.Name] = p.id
	}
	return ids, nil
}

func (t *fakeReconcileTx) MergeSectionInventory(_ context.Context, sectionID, productID, qty int, _ string) error {
	t.state.sectionInv[[2]int{sectionID, productID}] += qty
	return nil
}

func (t *fakeReconcileTx) ReserveSection(_ context.Context, sectionID, qty int) error {
	sec, ok := t.state.sections[sectionID]
	if !ok {
		return models.ErrSectionNotFound
	}
	if sec.IsBlocked {
		return models.ErrSectionBlocked
	}
	if sec.CurrentUsage+qty > sec.Capacity {
		return models.ErrCapacityExceeded
	}
	sec.CurrentUsage += qty
	return nil
}

func (t *fakeReconcileTx) ReleaseSection(_ context.Context, sectionID, qty int) error {
	sec, ok := t.state.sections[sectionID]
	if !ok {
		return models.ErrSectionNotFound
	}
	sec.CurrentUsage -= qty
	if sec.CurrentUsage < 0 {
		sec.CurrentUsage = 0
	}
	return nil
}

func (t *fakeReconcileTx) DeductProductStock(_ context.Context, productID, qty int) error {
	for _, p := range t.state.products {
		if p.id == productID {
			if p.qty < qty {
				return models.ErrInsufficientStock
			}
			p.qty -= qty
			return nil
		}
	}
	return models.ErrInsufficientStock
}

func (t *fakeReconcileTx) DeductSectionInventory(_ context.Context, sectionID, productID, qty int) error {
	key := [2]int{sectionID, productID}
	held := t.state.sectionInv[key]
	if held < qty {
		return models.ErrInsufficientStock
	}
	if held == qty {
		delete(t.state.sectionInv, key)
		return nil
	}
	t.state.sectionInv[key] = held - qty
	return nil
}

func (s *fakeReconcileStore) productID(t *testing.T, name string) int {
	t.Helper()
	p, ok := s.state.products[name]
	if !ok {
		t.Fatalf("product %q not found", name)
	}
	return p.id
}

func TestReconcilePutawaySplitsAcrossSections(t *testing.T) {
	t.Parallel()

	store := newFakeReconcileStore(
		&models.SectionUsage{SectionID: 1, Capacity: 60},
		&models.SectionUsage{SectionID: 2, Capacity: 60},
	)
	svc := NewReconcilerService(store)

	items := []*models.TruckItem{
		{ID: 10, Description: "Rice Bags", Quantity: 100},
	}
	assignments := []models.PutawayAssignment{
		{TruckItemID: 10, SectionID: 1, Quantity: 60},
		{TruckItemID: 10, SectionID: 2, Quantity: 40},
	}

	if err := svc.ReconcilePutaway(context.Background(), 1, items, assignments, ""); err != nil {
		t.Fatalf("ReconcilePutaway: %v", err)
	}

	pid := store.productID(t, "Rice Bags")
	if got := store.state.sectionInv[[2]int{1, pid}]; got != 60 {
		t.Fatalf("section 1 inventory = %d, want 60", got)
	}
	if got := store.state.sectionInv[[2]int{2, pid}]; got != 40 {
		t.Fatalf("section 2 inventory = %d, want 40", got)
	}
	if got := store.state.sections[1].CurrentUsage; got != 60 {
		t.Fatalf("section 1 usage = %d, want 60", got)
	}
	if got := store.state.sections[2].CurrentUsage; got != 40 {
		t.Fatalf("section 2 usage = %d, want 40", got)
	}
	// Credit and deduction cancel: unallocated stock stays zero.
	if got := store.state.products["Rice Bags"].qty; got != 0 {
		t.Fatalf("unallocated stock = %d, want 0", got)
	}
}

func TestReconcilePutawayMergesRepeatedPlacement(t *testing.T) {
	t.Parallel()

	store := newFakeReconcileStore(&models.SectionUsage{SectionID: 1, Capacity: 500})
	svc := NewReconcilerService(store)

	place := func(itemID, qty int) error {
		items := []*models.TruckItem{{ID: itemID, Description: "Crates", Quantity: qty}}
		return svc.ReconcilePutaway(context.Background(), 1, items,
			[]models.PutawayAssignment{{TruckItemID: itemID, SectionID: 1, Quantity: qty}}, "")
	}

	if err := place(1, 30); err != nil {
		t.Fatalf("first placement: %v", err)
	}
	if err := place(2, 20); err != nil {
		t.Fatalf("second placement: %v", err)
	}

	pid := store.productID(t, "Crates")
	if got := store.state.sectionInv[[2]int{1, pid}]; got != 50 {
		t.Fatalf("merged inventory = %d, want 50", got)
	}
	if n := len(store.state.products); n != 1 {
		t.Fatalf("products = %d, want 1 (resolution must be idempotent)", n)
	}
}

func TestReconcilePutawayRejectsUnderAllocation(t *testing.T) {
	t.Parallel()

	store := newFakeReconcileStore(&models.SectionUsage{SectionID: 1, Capacity: 100})
	svc := NewReconcilerService(store)

	items := []*models.TruckItem{{ID: 1, Description: "Crates", Quantity: 10}}
	err := svc.ReconcilePutaway(context.Background(), 1, items,
		[]models.PutawayAssignment{{TruckItemID: 1, SectionID: 1, Quantity: 7}}, "")
	if err == nil {
		t.Fatal("under-allocated batch accepted")
	}
	if len(store.state.products) != 0 {
		t.Fatal("rejected batch mutated state")
	}
}

func TestReconcilePutawayRejectsOverAllocation(t *testing.T) {
	t.Parallel()

	store := newFakeReconcileStore(&models.SectionUsage{SectionID: 1, Capacity: 100})
	svc := NewReconcilerService(store)

	items := []*models.TruckItem{{ID: 1, Description: "Crates", Quantity: 10}}
	err := svc.ReconcilePutaway(context.Background(), 1, items,
		[]models.PutawayAssignment{
			{TruckItemID: 1, SectionID: 1, Quantity: 7},
			{TruckItemID: 1, SectionID: 1, Quantity: 7},
		}, "")
	if err == nil {
		t.Fatal("over-allocated batch accepted")
	}
}

func TestReconcilePutawayRollsBackOnCapacityFailure(t *testing.T) {
	t.Parallel()

	store := newFakeReconcileStore(
		&models.SectionUsage{SectionID: 1, Capacity: 100},
		&models.SectionUsage{SectionID: 2, Capacity: 5},
	)
	svc := NewReconcilerService(store)

	items := []*models.TruckItem{
		{ID: 1, Description: "Crates", Quantity: 50},
		{ID: 2, Description: "Drums", Quantity: 10},
	}
	assignments := []models.PutawayAssignment{
		{TruckItemID: 1, SectionID: 1, Quantity: 50},
		{TruckItemID: 2, SectionID: 2, Quantity: 10}, // exceeds section 2
	}

	err := svc.ReconcilePutaway(context.Background(), 1, items, assignments, "")
	if !errors.Is(err, models.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}

	// Full batch rolls back: nothing placed, no usage claimed, no products.
	if got := store.state.sections[1].CurrentUsage; got != 0 {
		t.Fatalf("section 1 usage after rollback = %d, want 0", got)
	}
	if len(store.state.products) != 0 {
		t.Fatal("products created despite rollback")
	}
	if len(store.state.sectionInv) != 0 {
		t.Fatal("inventory rows created despite rollback")
	}
}

func TestMoveToSection(t *testing.T) {
	t.Parallel()

	store := newFakeReconcileStore(&models.SectionUsage{SectionID: 3, Capacity: 40})
	store.state.products["Crates"] = &fakeProduct{id: 1, qty: 25}
	svc := NewReconcilerService(store)

	if err := svc.MoveToSection(context.Background(), 1, 3, 20, "restock"); err != nil {
		t.Fatalf("MoveToSection: %v", err)
	}
	if got := store.state.products["Crates"].qty; got != 5 {
		t.Fatalf("unallocated stock = %d, want 5", got)
	}
	if got := store.state.sectionInv[[2]int{3, 1}]; got != 20 {
		t.Fatalf("section inventory = %d, want 20", got)
	}

	if err := svc.MoveToSection(context.Background(), 1, 3, 10, ""); !errors.Is(err, models.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if got := store.state.sections[3].CurrentUsage; got != 20 {
		t.Fatalf("usage after failed move = %d, want 20", got)
	}
}

func TestTransferBetweenSections(t *testing.T) {
	t.Parallel()

	store := newFakeReconcileStore(
		&models.SectionUsage{SectionID: 1, Capacity: 50, CurrentUsage: 30},
		&models.SectionUsage{SectionID: 2, Capacity: 50},
	)
	store.state.products["Crates"] = &fakeProduct{id: 1}
	store.state.sectionInv[[2]int{1, 1}] = 30
	svc := NewReconcilerService(store)

	err := svc.Transfer(context.Background(), &models.TransferStockRequest{
		FromSectionID: 1, ToSectionID: 2, ProductID: 1, Quantity: 30,
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	if _, ok := store.state.sectionInv[[2]int{1, 1}]; ok {
		t.Fatal("source row not removed when drained to zero")
	}
	if got := store.state.sectionInv[[2]int{2, 1}]; got != 30 {
		t.Fatalf("destination inventory = %d, want 30", got)
	}
	if got := store.state.sections[1].CurrentUsage; got != 0 {
		t.Fatalf("source usage = %d, want 0", got)
	}
	if got := store.state.sections[2].CurrentUsage; got != 30 {
		t.Fatalf("destination usage = %d, want 30", got)
	}
}

func TestTransferRejectsSameSection(t *testing.T) {
	t.Parallel()

	svc := NewReconcilerService(newFakeReconcileStore())
	err := svc.Transfer(context.Background(), &models.TransferStockRequest{
		FromSectionID: 1, ToSectionID: 1, ProductID: 1, Quantity: 5,
	})
	if err == nil {
		t.Fatal("same-section transfer accepted")
	}
}

func TestTransferRollsBackWhenDestinationFull(t *testing.T) {
	t.Parallel()

	store := newFakeReconcileStore(
		&models.SectionUsage{SectionID: 1, Capacity: 50, CurrentUsage: 20},
		&models.SectionUsage{SectionID: 2, Capacity: 10, CurrentUsage: 10},
	)
	store.state.products["Crates"] = &fakeProduct{id: 1}
	store.state.sectionInv[[2]int{1, 1}] = 20
	svc := NewReconcilerService(store)

	err := svc.Transfer(context.Background(), &models.TransferStockRequest{
		FromSectionID: 1, ToSectionID: 2, ProductID: 1, Quantity: 15,
	})
	if !errors.Is(err, models.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
	if got := store.state.sectionInv[[2]int{1, 1}]; got != 20 {
		t.Fatalf("source inventory after rollback = %d, want 20", got)
	}
	if got := store.state.sections[1].CurrentUsage; got != 20 {
		t.Fatalf("source usage after rollback = %d, want 20", got)
	}
}
