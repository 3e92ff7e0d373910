package repositories

import (
	"context"
	"errors"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DeliveryRepository struct {
	DB *pgxpool.Pool
}

func NewDeliveryRepository(db *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{DB: db}
}

func (r *DeliveryRepository) Create(ctx context.Context, d *models.Delivery) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO deliveries(client_id, reference, driver_name, vehicle_registration, status)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		d.ClientID, d.Reference, d.DriverName, d.VehicleRegistration, d.Status,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DeliveryRepository) Get(ctx context.Context, id int) (*models.Delivery, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, client_id, reference, COALESCE(driver_name, ''), COALESCE(vehicle_registration, ''),
                status, current_lat, current_lng, created_at, updated_at
         FROM deliveries WHERE id=$1`, id)

	var d models.Delivery
	err := row.Scan(&d.ID, &d.ClientID, &d.Reference, &d.DriverName, &d.VehicleRegistration,
		&d.Status, &d.CurrentLat, &d.CurrentLng, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryRepository) List(ctx context.Context) ([]*models.Delivery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, client_id, reference, COALESCE(driver_name, ''), COALESCE(vehicle_registration, ''),
                status, current_lat, current_lng, created_at, updated_at
         FROM deliveries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Delivery
	for rows.Next() {
		var d models.Delivery
		err := rows.Scan(&d.ID, &d.ClientID, &d.Reference, &d.DriverName, &d.VehicleRegistration,
			&d.Status, &d.CurrentLat, &d.CurrentLng, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DeliveryRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE deliveries SET status=$2, updated_at=NOW() WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("delivery not found")
	}
	return nil
}

// UpdatePosition stores the latest driver position.
func (r *DeliveryRepository) UpdatePosition(ctx context.Context, id int, lat, lng float64) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE deliveries SET current_lat=$2, current_lng=$3, updated_at=NOW() WHERE id=$1`,
		id, lat, lng)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("delivery not found")
	}
	return nil
}

func (r *DeliveryRepository) CreateStop(ctx context.Context, s *models.DeliveryStop) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO delivery_stops(delivery_id, seq, address, lat, lng)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, status, created_at, updated_at`,
		s.DeliveryID, s.Seq, s.Address, s.Lat, s.Lng,
	).Scan(&s.ID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
}

func (r *DeliveryRepository) ListStops(ctx context.Context, deliveryID int) ([]models.DeliveryStop, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, delivery_id, seq, address, lat, lng, status, eta, created_at, updated_at
         FROM delivery_stops WHERE delivery_id=$1 ORDER BY seq`, deliveryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DeliveryStop
	for rows.Next() {
		var s models.DeliveryStop
		err := rows.Scan(&s.ID, &s.DeliveryID, &s.Seq, &s.Address, &s.Lat, &s.Lng, &s.Status, &s.ETA, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *DeliveryRepository) UpdateStopStatus(ctx context.Context, stopID int, status string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE delivery_stops SET status=$2, updated_at=NOW() WHERE id=$1`, stopID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("delivery stop not found")
	}
	return nil
}
