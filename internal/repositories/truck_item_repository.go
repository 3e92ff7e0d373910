package repositories

import (
	"context"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TruckItemRepository struct {
	DB *pgxpool.Pool
}

func NewTruckItemRepository(db *pgxpool.Pool) *TruckItemRepository {
	return &TruckItemRepository{DB: db}
}

func (r *TruckItemRepository) Create(ctx context.Context, it *models.TruckItem) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO truck_items(truck_arrival_id, description, quantity, condition)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		it.TruckArrivalID, it.Description, it.Quantity, it.Condition,
	).Scan(&it.ID, &it.CreatedAt)
}

func (r *TruckItemRepository) Get(ctx context.Context, id int) (*models.TruckItem, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, truck_arrival_id, description, quantity, condition, created_at
         FROM truck_items WHERE id=$1`, id)

	var it models.TruckItem
	err := row.Scan(&it.ID, &it.TruckArrivalID, &it.Description, &it.Quantity, &it.Condition, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *TruckItemRepository) ListByArrival(ctx context.Context, arrivalID int) ([]*models.TruckItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, truck_arrival_id, description, quantity, condition, created_at
         FROM truck_items WHERE truck_arrival_id=$1 ORDER BY id`, arrivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TruckItem
	for rows.Next() {
		var it models.TruckItem
		err := rows.Scan(&it.ID, &it.TruckArrivalID, &it.Description, &it.Quantity, &it.Condition, &it.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (r *TruckItemRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM truck_items WHERE id=$1`, id)
	return err
}

func (r *TruckItemRepository) CountByArrival(ctx context.Context, arrivalID int) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM truck_items WHERE truck_arrival_id=$1`, arrivalID,
	).Scan(&n)
	return n, err
}
