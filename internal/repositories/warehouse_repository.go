package repositories

import (
	"context"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WarehouseRepository struct {
	DB *pgxpool.Pool
}

func NewWarehouseRepository(db *pgxpool.Pool) *WarehouseRepository {
	return &WarehouseRepository{DB: db}
}

func (r *WarehouseRepository) Create(ctx context.Context, w *models.Warehouse) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO warehouses(client_id, name, location)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		w.ClientID, w.Name, w.Location,
	).Scan(&w.ID, &w.CreatedAt)
}

func (r *WarehouseRepository) Get(ctx context.Context, id int) (*models.Warehouse, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, client_id, name, COALESCE(location, ''), created_at
         FROM warehouses WHERE id=$1`, id)

	var w models.Warehouse
	err := row.Scan(&w.ID, &w.ClientID, &w.Name, &w.Location, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WarehouseRepository) List(ctx context.Context) ([]*models.Warehouse, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, client_id, name, COALESCE(location, ''), created_at
         FROM warehouses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Warehouse
	for rows.Next() {
		var w models.Warehouse
		err := rows.Scan(&w.ID, &w.ClientID, &w.Name, &w.Location, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *WarehouseRepository) ListByClient(ctx context.Context, clientID int) ([]*models.Warehouse, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, client_id, name, COALESCE(location, ''), created_at
         FROM warehouses WHERE client_id=$1 ORDER BY name`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Warehouse
	for rows.Next() {
		var w models.Warehouse
		err := rows.Scan(&w.ID, &w.ClientID, &w.Name, &w.Location, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *WarehouseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM warehouses WHERE id=$1`, id)
	return err
}

func (r *WarehouseRepository) CreateLayout(ctx context.Context, l *models.WarehouseLayout) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO warehouse_layouts(warehouse_id, name, rows, columns)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		l.WarehouseID, l.Name, l.Rows, l.Columns,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *WarehouseRepository) GetLayout(ctx context.Context, id int) (*models.WarehouseLayout, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, warehouse_id, name, rows, columns, created_at
         FROM warehouse_layouts WHERE id=$1`, id)

	var l models.WarehouseLayout
	err := row.Scan(&l.ID, &l.WarehouseID, &l.Name, &l.Rows, &l.Columns, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *WarehouseRepository) ListLayouts(ctx context.Context, warehouseID int) ([]*models.WarehouseLayout, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, warehouse_id, name, rows, columns, created_at
         FROM warehouse_layouts WHERE warehouse_id=$1 ORDER BY name`, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.WarehouseLayout
	for rows.Next() {
		var l models.WarehouseLayout
		err := rows.Scan(&l.ID, &l.WarehouseID, &l.Name, &l.Rows, &l.Columns, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *WarehouseRepository) DeleteLayout(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM warehouse_layouts WHERE id=$1`, id)
	return err
}
