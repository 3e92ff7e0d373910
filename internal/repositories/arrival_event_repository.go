package repositories

import (
	"context"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ArrivalEventRepository struct {
	DB *pgxpool.Pool
}

func NewArrivalEventRepository(db *pgxpool.Pool) *ArrivalEventRepository {
	return &ArrivalEventRepository{DB: db}
}

func (r *ArrivalEventRepository) Create(ctx context.Context, e *models.ArrivalEvent) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO arrival_events(truck_arrival_id, event_type, status, notes, created_by_user_id)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		e.TruckArrivalID, e.EventType, e.Status, e.Notes, e.CreatedByUserID,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *ArrivalEventRepository) ListByArrival(ctx context.Context, arrivalID int) ([]*models.ArrivalEvent, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, truck_arrival_id, event_type, status, COALESCE(notes, ''), created_by_user_id, created_at
         FROM arrival_events WHERE truck_arrival_id=$1 ORDER BY created_at`, arrivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ArrivalEvent
	for rows.Next() {
		var e models.ArrivalEvent
		err := rows.Scan(&e.ID, &e.TruckArrivalID, &e.EventType, &e.Status, &e.Notes, &e.CreatedByUserID, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
