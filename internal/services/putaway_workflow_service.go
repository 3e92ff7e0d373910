package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"wms-backend/internal/models"
)

type putawaySessionStore interface {
	Create(ctx context.Context, s *models.PutawaySession) error
	GetByArrival(ctx context.Context, arrivalID int) (*models.PutawaySession, error)
	UpdateStage(ctx context.Context, arrivalID int, stage string) error
	SetSupervisor(ctx context.Context, arrivalID int, supervisor string) error
	ListActive(ctx context.Context) ([]*models.PutawaySession, error)
}

type arrivalStore interface {
	Create(ctx context.Context, a *models.TruckArrival) error
	Get(ctx context.Context, id int) (*models.TruckArrival, error)
}

type truckItemStore interface {
	Create(ctx context.Context, it *models.TruckItem) error
	Get(ctx context.Context, id int) (*models.TruckItem, error)
	ListByArrival(ctx context.Context, arrivalID int) ([]*models.TruckItem, error)
	Delete(ctx context.Context, id int) error
}

type qualityCheckStore interface {
	Create(ctx context.Context, qc *models.QualityCheck) error
	ListByArrival(ctx context.Context, arrivalID int) ([]*models.QualityCheck, error)
}

type arrivalEventStore interface {
	Create(ctx context.Context, e *models.ArrivalEvent) error
}

type putawayReconciler interface {
	ReconcilePutaway(ctx context.Context, clientID int, items []*models.TruckItem, assignments []models.PutawayAssignment, notes string) error
}

// PutawayWorkflowService drives an arrival through unloading, quality check,
// and putaway. Stages only move forward, and each transition checks its
// guard before mutating anything.
type PutawayWorkflowService struct {
	sessions   putawaySessionStore
	arrivals   arrivalStore
	items      truckItemStore
	checks     qualityCheckStore
	events     arrivalEventStore
	reconciler putawayReconciler
}

func NewPutawayWorkflowService(
	sessions putawaySessionStore,
	arrivals arrivalStore,
	items truckItemStore,
	checks qualityCheckStore,
	events arrivalEventStore,
	reconciler putawayReconciler,
) *PutawayWorkflowService {
	return &PutawayWorkflowService{
		sessions:   sessions,
		arrivals:   arrivals,
		items:      items,
		checks:     checks,
		events:     events,
		reconciler: reconciler,
	}
}

// RegisterArrival records a truck arrival and opens its workflow session.
func (s *PutawayWorkflowService) RegisterArrival(ctx context.Context, req *models.CreateTruckArrivalRequest, userID int) (*models.TruckArrival, error) {
	if req.ClientID <= 0 || req.WarehouseID <= 0 {
		return nil, errors.New("client and warehouse are required")
	}
	if req.VehicleRegistration == "" || req.CustomerName == "" || req.DriverName == "" {
		return nil, errors.New("vehicle registration, customer name, and driver name are required")
	}

	arrival := &models.TruckArrival{
		ClientID:            req.ClientID,
		WarehouseID:         req.WarehouseID,
		VehicleRegistration: req.VehicleRegistration,
		CustomerName:        req.CustomerName,
		DriverName:          req.DriverName,
		VehicleSize:         req.VehicleSize,
		LoadType:            req.LoadType,
		CreatedByUserID:     userID,
	}
	if err := s.arrivals.Create(ctx, arrival); err != nil {
		return nil, err
	}

	session := &models.PutawaySession{
		TruckArrivalID:  arrival.ID,
		Stage:           models.StageArrivalPending,
		CreatedByUserID: userID,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, arrival.ID, models.EventTypeArrival, models.StatusCompleted,
		fmt.Sprintf("vehicle %s registered", arrival.VehicleRegistration), userID)
	return arrival, nil
}

// GetSession returns the persisted workflow state for an arrival, so a
// reconnecting client resumes where it left off.
func (s *PutawayWorkflowService) GetSession(ctx context.Context, arrivalID int) (*models.PutawaySession, error) {
	session, err := s.sessions.GetByArrival(ctx, arrivalID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("no putaway session for arrival %d", arrivalID)
	}
	return session, nil
}

func (s *PutawayWorkflowService) ListActiveSessions(ctx context.Context) ([]*models.PutawaySession, error) {
	return s.sessions.ListActive(ctx)
}

func (s *PutawayWorkflowService) requireStage(ctx context.Context, arrivalID int, want string) error {
	session, err := s.GetSession(ctx, arrivalID)
	if err != nil {
		return err
	}
	if session.Stage != want {
		return fmt.Errorf("%w: arrival %d is in stage %s, expected %s",
			models.ErrStageMismatch, arrivalID, session.Stage, want)
	}
	return nil
}

// StartUnloading moves an arrival from pending to the unloading stage.
func (s *PutawayWorkflowService) StartUnloading(ctx context.Context, arrivalID, userID int) error {
	if err := s.requireStage(ctx, arrivalID, models.StageArrivalPending); err != nil {
		return err
	}
	if err := s.sessions.UpdateStage(ctx, arrivalID, models.StageUnloading); err != nil {
		return err
	}
	s.recordEvent(ctx, arrivalID, models.EventTypeUnloading, models.StatusInProgress, "", userID)
	return nil
}

// AddItem records one unloaded line item. Only legal during unloading.
func (s *PutawayWorkflowService) AddItem(ctx context.Context, arrivalID int, req *models.CreateTruckItemRequest) (*models.TruckItem, error) {
	if err := s.requireStage(ctx, arrivalID, models.StageUnloading); err != nil {
		return nil, err
	}
	if req.Description == "" {
		return nil, errors.New("item description is required")
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("item quantity must be at least 1, got %d", req.Quantity)
	}
	switch req.Condition {
	case models.ConditionGood, models.ConditionDamaged, models.ConditionFragile, models.ConditionExpired:
	case "":
		req.Condition = models.ConditionGood
	default:
		return nil, fmt.Errorf("unknown item condition %q", req.Condition)
	}

	item := &models.TruckItem{
		TruckArrivalID: arrivalID,
		Description:    req.Description,
		Quantity:       req.Quantity,
		Condition:      req.Condition,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a mis-entered line item. Its quality check, if any,
// goes with it.
func (s *PutawayWorkflowService) RemoveItem(ctx context.Context, arrivalID, itemID int) error {
	if err := s.requireStage(ctx, arrivalID, models.StageUnloading); err != nil {
		return err
	}
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item.TruckArrivalID != arrivalID {
		return fmt.Errorf("item %d does not belong to arrival %d", itemID, arrivalID)
	}
	return s.items.Delete(ctx, itemID)
}

func (s *PutawayWorkflowService) ListItems(ctx context.Context, arrivalID int) ([]*models.TruckItem, error) {
	return s.items.ListByArrival(ctx, arrivalID)
}

// CompleteUnloading closes the unloading stage. At least one item must have
// been recorded.
func (s *PutawayWorkflowService) CompleteUnloading(ctx context.Context, arrivalID, userID int) error {
	if err := s.requireStage(ctx, arrivalID, models.StageUnloading); err != nil {
		return err
	}
	items, err := s.items.ListByArrival(ctx, arrivalID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errors.New("cannot complete unloading with no items recorded")
	}
	if err := s.sessions.UpdateStage(ctx, arrivalID, models.StageQualityCheck); err != nil {
		return err
	}
	s.recordEvent(ctx, arrivalID, models.EventTypeUnloading, models.StatusCompleted,
		fmt.Sprintf("%d items unloaded", len(items)), userID)
	s.recordEvent(ctx, arrivalID, models.EventTypeQualityCheck, models.StatusInProgress, "", userID)
	return nil
}

// CompleteQualityCheck records exactly one inspection per item and advances
// to putaway. Damaged verdicts must carry a photo.
func (s *PutawayWorkflowService) CompleteQualityCheck(ctx context.Context, arrivalID int, req *models.SubmitQualityChecksRequest, userID int) error {
	if err := s.requireStage(ctx, arrivalID, models.StageQualityCheck); err != nil {
		return err
	}
	if req.SupervisorName == "" {
		return errors.New("supervisor name is required")
	}

	items, err := s.items.ListByArrival(ctx, arrivalID)
	if err != nil {
		return err
	}

	itemIDs := make(map[int]bool, len(items))
	for _, it := range items {
		itemIDs[it.ID] = true
	}
	seen := make(map[int]bool, len(req.Checks))
	for _, c := range req.Checks {
		if !itemIDs[c.TruckItemID] {
			return fmt.Errorf("check references unknown item %d", c.TruckItemID)
		}
		if seen[c.TruckItemID] {
			return fmt.Errorf("item %d checked more than once", c.TruckItemID)
		}
		seen[c.TruckItemID] = true
		switch c.Status {
		case models.QualityStatusOK:
		case models.QualityStatusDamaged:
			if c.DamageImageURL == nil || *c.DamageImageURL == "" {
				return fmt.Errorf("item %d marked damaged without a photo", c.TruckItemID)
			}
		default:
			return fmt.Errorf("unknown quality status %q", c.Status)
		}
	}
	if len(seen) != len(items) {
		return fmt.Errorf("quality check incomplete: %d of %d items checked", len(seen), len(items))
	}

	for _, c := range req.Checks {
		qc := &models.QualityCheck{
			TruckItemID:    c.TruckItemID,
			Status:         c.Status,
			DamageImageURL: c.DamageImageURL,
			SupervisorName: req.SupervisorName,
			Barcode:        fmt.Sprintf("QC-%d-%d", arrivalID, c.TruckItemID),
		}
		if err := s.checks.Create(ctx, qc); err != nil {
			return err
		}
	}

	if err := s.sessions.SetSupervisor(ctx, arrivalID, req.SupervisorName); err != nil {
		return err
	}
	if err := s.sessions.UpdateStage(ctx, arrivalID, models.StagePutaway); err != nil {
		return err
	}
	s.recordEvent(ctx, arrivalID, models.EventTypeQualityCheck, models.StatusCompleted,
		fmt.Sprintf("%d items checked by %s", len(req.Checks), req.SupervisorName), userID)
	s.recordEvent(ctx, arrivalID, models.EventTypePutaway, models.StatusInProgress, "", userID)
	return nil
}

func (s *PutawayWorkflowService) ListChecks(ctx context.Context, arrivalID int) ([]*models.QualityCheck, error) {
	return s.checks.ListByArrival(ctx, arrivalID)
}

// CompletePutaway reconciles the assignments against inventory and closes
// the session. The reconciler commits everything or nothing, so a capacity
// failure leaves the arrival in the putaway stage with state untouched.
func (s *PutawayWorkflowService) CompletePutaway(ctx context.Context, arrivalID int, assignments []models.PutawayAssignment, userID int) error {
	if err := s.requireStage(ctx, arrivalID, models.StagePutaway); err != nil {
		return err
	}

	arrival, err := s.arrivals.Get(ctx, arrivalID)
	if err != nil {
		return err
	}
	items, err := s.items.ListByArrival(ctx, arrivalID)
	if err != nil {
		return err
	}

	notes := fmt.Sprintf("From truck arrival: %s", arrival.VehicleRegistration)
	if err := s.reconciler.ReconcilePutaway(ctx, arrival.ClientID, items, assignments, notes); err != nil {
		return err
	}

	if err := s.sessions.UpdateStage(ctx, arrivalID, models.StageComplete); err != nil {
		return err
	}
	s.recordEvent(ctx, arrivalID, models.EventTypePutaway, models.StatusCompleted, "", userID)
	s.recordEvent(ctx, arrivalID, models.EventTypeCompleted, models.StatusCompleted, "", userID)
	return nil
}

// recordEvent appends to the arrival timeline. Timeline writes are
// best-effort; a failed insert never blocks the workflow.
func (s *PutawayWorkflowService) recordEvent(ctx context.Context, arrivalID int, eventType, status, notes string, userID int) {
	e := &models.ArrivalEvent{
		TruckArrivalID:  arrivalID,
		EventType:       eventType,
		Status:          status,
		Notes:           notes,
		CreatedByUserID: userID,
	}
	if err := s.events.Create(ctx, e); err != nil {
		log.Printf("[Putaway] failed to record %s event for arrival %d: %v", eventType, arrivalID, err)
	}
}
