package services

import (
	"context"
	"errors"
	"fmt"

	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
	"wms-backend/internal/timeutil"
)

// PositionBroadcaster pushes live position updates to subscribed clients.
type PositionBroadcaster interface {
	Broadcast(update *models.PositionUpdate)
}

// DeliveryService manages outbound deliveries and their live tracking.
type DeliveryService struct {
	deliveries *repositories.DeliveryRepository
	hub        PositionBroadcaster
}

func NewDeliveryService(deliveries *repositories.DeliveryRepository, hub PositionBroadcaster) *DeliveryService {
	return &DeliveryService{deliveries: deliveries, hub: hub}
}

func (s *DeliveryService) Create(ctx context.Context, req *models.CreateDeliveryRequest) (*models.Delivery, error) {
	if req.ClientID <= 0 {
		return nil, errors.New("client is required")
	}
	if req.Reference == "" {
		return nil, errors.New("delivery reference is required")
	}
	if len(req.Stops) == 0 {
		return nil, errors.New("at least one stop is required")
	}

	d := &models.Delivery{
		ClientID:            req.ClientID,
		Reference:           req.Reference,
		DriverName:          req.DriverName,
		VehicleRegistration: req.VehicleRegistration,
		Status:              models.DeliveryStatusPending,
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}

	for _, st := range req.Stops {
		stop := &models.DeliveryStop{
			DeliveryID: d.ID,
			Seq:        st.Seq,
			Address:    st.Address,
			Lat:        st.Lat,
			Lng:        st.Lng,
		}
		if err := s.deliveries.CreateStop(ctx, stop); err != nil {
			return nil, err
		}
		d.Stops = append(d.Stops, *stop)
	}
	return d, nil
}

func (s *DeliveryService) Get(ctx context.Context, id int) (*models.Delivery, error) {
	d, err := s.deliveries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	stops, err := s.deliveries.ListStops(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Stops = stops
	return d, nil
}

func (s *DeliveryService) List(ctx context.Context) ([]*models.Delivery, error) {
	return s.deliveries.List(ctx)
}

// UpdateStatus moves a delivery along pending -> in_transit -> delivered.
// Cancellation is allowed from any non-terminal status.
func (s *DeliveryService) UpdateStatus(ctx context.Context, id int, status string) error {
	d, err := s.deliveries.Get(ctx, id)
	if err != nil {
		return err
	}

	allowed := map[string][]string{
		models.DeliveryStatusPending:   {models.DeliveryStatusInTransit, models.DeliveryStatusCancelled},
		models.DeliveryStatusInTransit: {models.DeliveryStatusDelivered, models.DeliveryStatusCancelled},
	}
	ok := false
	for _, next := range allowed[d.Status] {
		if next == status {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("cannot move delivery %d from %s to %s", id, d.Status, status)
	}

	if err := s.deliveries.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Broadcast(&models.PositionUpdate{
			DeliveryID: id,
			Status:     status,
			UpdatedAt:  timeutil.Now(),
		})
	}
	return nil
}

// UpdatePosition records the driver's position and fans it out to watchers.
func (s *DeliveryService) UpdatePosition(ctx context.Context, id int, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("coordinates (%f, %f) out of range", lat, lng)
	}
	if err := s.deliveries.UpdatePosition(ctx, id, lat, lng); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Broadcast(&models.PositionUpdate{
			DeliveryID: id,
			Lat:        lat,
			Lng:        lng,
			UpdatedAt:  timeutil.Now(),
		})
	}
	return nil
}

func (s *DeliveryService) UpdateStopStatus(ctx context.Context, stopID int, status string) error {
	switch status {
	case "pending", "arrived", "done":
	default:
		return fmt.Errorf("unknown stop status %q", status)
	}
	return s.deliveries.UpdateStopStatus(ctx, stopID, status)
}
