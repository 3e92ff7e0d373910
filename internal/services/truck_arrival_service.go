package services

import (
	"context"

	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
)

// TruckArrivalService serves the arrivals board and timelines; arrival
// registration itself goes through the putaway workflow.
type TruckArrivalService struct {
	arrivals *repositories.TruckArrivalRepository
	events   *repositories.ArrivalEventRepository
}

func NewTruckArrivalService(arrivals *repositories.TruckArrivalRepository, events *repositories.ArrivalEventRepository) *TruckArrivalService {
	return &TruckArrivalService{arrivals: arrivals, events: events}
}

func (s *TruckArrivalService) Get(ctx context.Context, id int) (*models.TruckArrival, error) {
	return s.arrivals.Get(ctx, id)
}

func (s *TruckArrivalService) List(ctx context.Context, limit int) ([]*models.TruckArrival, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.arrivals.List(ctx, limit)
}

// Timeline returns an arrival's event history in order.
func (s *TruckArrivalService) Timeline(ctx context.Context, arrivalID int) ([]*models.ArrivalEvent, error) {
	return s.events.ListByArrival(ctx, arrivalID)
}
