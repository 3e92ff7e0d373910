package services

import (
	"context"
	"errors"
	"testing"

	"wms-backend/internal/models"
)

type workflowFixture struct {
	svc      *PutawayWorkflowService
	sessions *fakeSessionStore
	items    *fakeItemStore
	checks   *fakeCheckStore
	events   *fakeEventStore
	rec      *fakePutawayReconciler
}

type fakeSessionStore struct {
	byArrival map[int]*models.PutawaySession
	nextID    int
}

func (s *fakeSessionStore) Create(_ context.Context, sess *models.PutawaySession) error {
	s.nextID++
	sess.ID = s.nextID
	s.byArrival[sess.TruckArrivalID] = sess
	return nil
}

func (s *fakeSessionStore) GetByArrival(_ context.Context, arrivalID int) (*models.PutawaySession, error) {
	return s.byArrival[arrivalID], nil
}

func (s *fakeSessionStore) UpdateStage(_ context.Context, arrivalID int, stage string) error {
	sess, ok := s.byArrival[arrivalID]
	if !ok {
		return errors.New("putaway session not found")
	}
	sess.Stage = stage
	return nil
}

func (s *fakeSessionStore) SetSupervisor(_ context.Context, arrivalID int, supervisor string) error {
	sess, ok := s.byArrival[arrivalID]
	if !ok {
		return errors.New("putaway session not found")
	}
	sess.SupervisorName = supervisor
	return nil
}

func (s *fakeSessionStore) ListActive(_ context.Context) ([]*models.PutawaySession, error) {
	var out []*models.PutawaySession
	for _, sess := range s.byArrival {
		if sess.Stage != models.StageComplete {
			out = append(out, sess)
		}
	}
	return out, nil
}

type fakeArrivalStore struct {
	byID   map[int]*models.TruckArrival
	nextID int
}

func (s *fakeArrivalStore) Create(_ context.Context, a *models.TruckArrival) error {
	s.nextID++
	a.ID = s.nextID
	s.byID[a.ID] = a
	return nil
}

func (s *fakeArrivalStore) Get(_ context.Context, id int) (*models.TruckArrival, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, errors.New("arrival not found")
	}
	return a, nil
}

type fakeItemStore struct {
	byID   map[int]*models.TruckItem
	nextID int
}

func (s *fakeItemStore) Create(_ context.Context, it *models.TruckItem) error {
	s.nextID++
	it.ID = s.nextID
	s.byID[it.ID] = it
	return nil
}

func (s *fakeItemStore) Get(_ context.Context, id int) (*models.TruckItem, error) {
	it, ok := s.byID[id]
	if !ok {
		return nil, errors.New("item not found")
	}
	return it, nil
}

func (s *fakeItemStore) ListByArrival(_ context.Context, arrivalID int) ([]*models.TruckItem, error) {
	var out []*models.TruckItem
	for _, it := range s.byID {
		if it.TruckArrivalID == arrivalID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *fakeItemStore) Delete(_ context.Context, id int) error {
	delete(s.byID, id)
	return nil
}

type fakeCheckStore struct {
	created []*models.QualityCheck
}

func (s *fakeCheckStore) Create(_ context.Context, qc *models.QualityCheck) error {
	qc.ID = len(s.created) + 1
	s.created = append(s.created, qc)
	return nil
}

func (s *fakeCheckStore) ListByArrival(_ context.Context, _ int) ([]*models.QualityCheck, error) {
	return s.created, nil
}

type fakeEventStore struct {
	events []*models.ArrivalEvent
}

func (s *fakeEventStore) Create(_ context.Context, e *models.ArrivalEvent) error {
	s.events = append(s.events, e)
	return nil
}

type fakePutawayReconciler struct {
	calls int
	fail  error
}

func (r *fakePutawayReconciler) ReconcilePutaway(_ context.Context, _ int, _ []*models.TruckItem, _ []models.PutawayAssignment, _ string) error {
	r.calls++
	return r.fail
}

func newWorkflowFixture() *workflowFixture {
	f := &workflowFixture{
		sessions: &fakeSessionStore{byArrival: make(map[int]*models.PutawaySession)},
		items:    &fakeItemStore{byID: make(map[int]*models.TruckItem)},
		checks:   &fakeCheckStore{},
		events:   &fakeEventStore{},
		rec:      &fakePutawayReconciler{},
	}
	arrivals := &fakeArrivalStore{byID: make(map[int]*models.TruckArrival)}
	f.svc = NewPutawayWorkflowService(f.sessions, arrivals, f.items, f.checks, f.events, f.rec)
	return f
}

func (f *workflowFixture) register(t *testing.T) *models.TruckArrival {
	t.Helper()
	arrival, err := f.svc.RegisterArrival(context.Background(), &models.CreateTruckArrivalRequest{
		ClientID:            1,
		WarehouseID:         1,
		VehicleRegistration: "KA-01-1234",
		CustomerName:        "Acme Traders",
		DriverName:          "R. Kumar",
	}, 7)
	if err != nil {
		t.Fatalf("RegisterArrival: %v", err)
	}
	return arrival
}

func (f *workflowFixture) advanceToUnloading(t *testing.T, arrivalID int) {
	t.Helper()
	if err := f.svc.StartUnloading(context.Background(), arrivalID, 7); err != nil {
		t.Fatalf("StartUnloading: %v", err)
	}
}

func (f *workflowFixture) addItem(t *testing.T, arrivalID int, desc string, qty int) *models.TruckItem {
	t.Helper()
	it, err := f.svc.AddItem(context.Background(), arrivalID, &models.CreateTruckItemRequest{
		Description: desc,
		Quantity:    qty,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return it
}

func (f *workflowFixture) advanceToPutaway(t *testing.T, arrivalID int, itemIDs ...int) {
	t.Helper()
	if err := f.svc.CompleteUnloading(context.Background(), arrivalID, 7); err != nil {
		t.Fatalf("CompleteUnloading: %v", err)
	}
	checks := make([]models.QualityCheckInput, 0, len(itemIDs))
	for _, id := range itemIDs {
		checks = append(checks, models.QualityCheckInput{TruckItemID: id, Status: models.QualityStatusOK})
	}
	err := f.svc.CompleteQualityCheck(context.Background(), arrivalID,
		&models.SubmitQualityChecksRequest{SupervisorName: "S. Rao", Checks: checks}, 7)
	if err != nil {
		t.Fatalf("CompleteQualityCheck: %v", err)
	}
}

func TestRegisterArrivalOpensSession(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	arrival := f.register(t)

	sess, err := f.svc.GetSession(context.Background(), arrival.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.Stage != models.StageArrivalPending {
		t.Fatalf("stage = %s, want %s", sess.Stage, models.StageArrivalPending)
	}
	if len(f.events.events) != 1 || f.events.events[0].EventType != models.EventTypeArrival {
		t.Fatalf("expected one arrival event, got %+v", f.events.events)
	}
}

func TestWorkflowHappyPath(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	arrival := f.register(t)
	f.advanceToUnloading(t, arrival.ID)
	it := f.addItem(t, arrival.ID, "Rice Bags", 100)
	f.advanceToPutaway(t, arrival.ID, it.ID)

	err := f.svc.CompletePutaway(context.Background(), arrival.ID,
		[]models.PutawayAssignment{{TruckItemID: it.ID, SectionID: 1, Quantity: 100}}, 7)
	if err != nil {
		t.Fatalf("CompletePutaway: %v", err)
	}

	sess, _ := f.svc.GetSession(context.Background(), arrival.ID)
	if sess.Stage != models.StageComplete {
		t.Fatalf("stage = %s, want %s", sess.Stage, models.StageComplete)
	}
	if f.rec.calls != 1 {
		t.Fatalf("reconciler calls = %d, want 1", f.rec.calls)
	}
	if sess.SupervisorName != "S. Rao" {
		t.Fatalf("supervisor = %q, want S. Rao", sess.SupervisorName)
	}
}

func TestStagesOnlyMoveForward(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	arrival := f.register(t)

	// Skipping stages is rejected.
	err := f.svc.CompletePutaway(context.Background(), arrival.ID, nil, 7)
	if !errors.Is(err, models.ErrStageMismatch) {
		t.Fatalf("err = %v, want ErrStageMismatch", err)
	}

	f.advanceToUnloading(t, arrival.ID)

	// Repeating a consumed transition is rejected too.
	if err := f.svc.StartUnloading(context.Background(), arrival.ID, 7); !errors.Is(err, models.ErrStageMismatch) {
		t.Fatalf("err = %v, want ErrStageMismatch", err)
	}
}

func TestAddItemOnlyDuringUnloading(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	arrival := f.register(t)

	_, err := f.svc.AddItem(context.Background(), arrival.ID, &models.CreateTruckItemRequest{
		Description: "Crates", Quantity: 5,
	})
	if !errors.Is(err, models.ErrStageMismatch) {
		t.Fatalf("err = %v, want ErrStageMismatch", err)
	}
}

func TestCompleteUnloadingRequiresItems(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	arrival := f.register(t)
	f.advanceToUnloading(t, arrival.ID)

	if err := f.svc.CompleteUnloading(context.Background(), arrival.ID, 7); err == nil {
		t.Fatal("empty unloading stage completed")
	}
}

func TestQualityCheckCoversEveryItemExactlyOnce(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	arrival := f.register(t)
	f.advanceToUnloading(t, arrival.ID)
	a := f.addItem(t, arrival.ID, "Crates", 10)
	b := f.addItem(t, arrival.ID, "Drums", 4)
	if err := f.svc.CompleteUnloading(context.Background(), arrival.ID, 7); err != nil {
		t.Fatalf("CompleteUnloading: %v", err)
	}

	submit := func(checks ...models.QualityCheckInput) error {
		return f.svc.CompleteQualityCheck(context.Background(), arrival.ID,
			&models.SubmitQualityChecksRequest{SupervisorName: "S. Rao", Checks: checks}, 7)
	}

	// Missing an item.
	if err := submit(models.QualityCheckInput{TruckItemID: a.ID, Status: models.QualityStatusOK}); err == nil {
		t.Fatal("partial quality check accepted")
	}

	// Duplicate check for the same item.
	err := submit(
		models.QualityCheckInput{TruckItemID: a.ID, Status: models.QualityStatusOK},
		models.QualityCheckInput{TruckItemID: a.ID, Status: models.QualityStatusOK},
	)
	if err == nil {
		t.Fatal("duplicate quality check accepted")
	}

	// Damaged without a photo.
	err = submit(
		models.QualityCheckInput{TruckItemID: a.ID, Status: models.QualityStatusOK},
		models.QualityCheckInput{TruckItemID: b.ID, Status: models.QualityStatusDamaged},
	)
	if err == nil {
		t.Fatal("damaged verdict without photo accepted")
	}

	photo := "https://bucket/damage/4.jpg"
	err = submit(
		models.QualityCheckInput{TruckItemID: a.ID, Status: models.QualityStatusOK},
		models.QualityCheckInput{TruckItemID: b.ID, Status: models.QualityStatusDamaged, DamageImageURL: &photo},
	)
	if err != nil {
		t.Fatalf("valid quality check rejected: %v", err)
	}
	if len(f.checks.created) != 2 {
		t.Fatalf("checks created = %d, want 2", len(f.checks.created))
	}
}

func TestCompletePutawayFailureKeepsStage(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	arrival := f.register(t)
	f.advanceToUnloading(t, arrival.ID)
	it := f.addItem(t, arrival.ID, "Crates", 10)
	f.advanceToPutaway(t, arrival.ID, it.ID)

	f.rec.fail = models.ErrCapacityExceeded
	err := f.svc.CompletePutaway(context.Background(), arrival.ID,
		[]models.PutawayAssignment{{TruckItemID: it.ID, SectionID: 1, Quantity: 10}}, 7)
	if !errors.Is(err, models.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}

	sess, _ := f.svc.GetSession(context.Background(), arrival.ID)
	if sess.Stage != models.StagePutaway {
		t.Fatalf("stage = %s, want %s (failed putaway must not advance)", sess.Stage, models.StagePutaway)
	}
}

func TestRemoveItemChecksOwnership(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture()
	first := f.register(t)
	second := f.register(t)
	f.advanceToUnloading(t, first.ID)
	f.advanceToUnloading(t, second.ID)
	it := f.addItem(t, first.ID, "Crates", 5)

	if err := f.svc.RemoveItem(context.Background(), second.ID, it.ID); err == nil {
		t.Fatal("removed an item belonging to another arrival")
	}
	if err := f.svc.RemoveItem(context.Background(), first.ID, it.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
}
