package repositories

import (
	"context"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TruckArrivalRepository struct {
	DB *pgxpool.Pool
}

func NewTruckArrivalRepository(db *pgxpool.Pool) *TruckArrivalRepository {
	return &TruckArrivalRepository{DB: db}
}

func (r *TruckArrivalRepository) Create(ctx context.Context, a *models.TruckArrival) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO truck_arrivals(client_id, warehouse_id, vehicle_registration, customer_name, driver_name, vehicle_size, load_type, created_by_user_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, arrival_time, created_at`,
		a.ClientID, a.WarehouseID, a.VehicleRegistration, a.CustomerName, a.DriverName,
		a.VehicleSize, a.LoadType, a.CreatedByUserID,
	).Scan(&a.ID, &a.ArrivalTime, &a.CreatedAt)
}

func (r *TruckArrivalRepository) Get(ctx context.Context, id int) (*models.TruckArrival, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, client_id, warehouse_id, vehicle_registration, customer_name, driver_name,
                COALESCE(vehicle_size, ''), COALESCE(load_type, ''), arrival_time, created_by_user_id, created_at
         FROM truck_arrivals WHERE id=$1`, id)

	var a models.TruckArrival
	err := row.Scan(&a.ID, &a.ClientID, &a.WarehouseID, &a.VehicleRegistration, &a.CustomerName,
		&a.DriverName, &a.VehicleSize, &a.LoadType, &a.ArrivalTime, &a.CreatedByUserID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *TruckArrivalRepository) List(ctx context.Context, limit int) ([]*models.TruckArrival, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, client_id, warehouse_id, vehicle_registration, customer_name, driver_name,
                COALESCE(vehicle_size, ''), COALESCE(load_type, ''), arrival_time, created_by_user_id, created_at
         FROM truck_arrivals ORDER BY arrival_time DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TruckArrival
	for rows.Next() {
		var a models.TruckArrival
		err := rows.Scan(&a.ID, &a.ClientID, &a.WarehouseID, &a.VehicleRegistration, &a.CustomerName,
			&a.DriverName, &a.VehicleSize, &a.LoadType, &a.ArrivalTime, &a.CreatedByUserID, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
