package repositories

import (
	"context"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type QualityCheckRepository struct {
	DB *pgxpool.Pool
}

func NewQualityCheckRepository(db *pgxpool.Pool) *QualityCheckRepository {
	return &QualityCheckRepository{DB: db}
}

func (r *QualityCheckRepository) Create(ctx context.Context, qc *models.QualityCheck) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO quality_checks(truck_item_id, status, damage_image_url, supervisor_name, barcode)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		qc.TruckItemID, qc.Status, qc.DamageImageURL, qc.SupervisorName, qc.Barcode,
	).Scan(&qc.ID, &qc.CreatedAt)
}

func (r *QualityCheckRepository) ListByArrival(ctx context.Context, arrivalID int) ([]*models.QualityCheck, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT qc.id, qc.truck_item_id, qc.status, qc.damage_image_url, qc.supervisor_name, qc.barcode, qc.created_at
         FROM quality_checks qc
         JOIN truck_items ti ON ti.id = qc.truck_item_id
         WHERE ti.truck_arrival_id=$1
         ORDER BY qc.id`, arrivalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.QualityCheck
	for rows.Next() {
		var qc models.QualityCheck
		err := rows.Scan(&qc.ID, &qc.TruckItemID, &qc.Status, &qc.DamageImageURL, &qc.SupervisorName, &qc.Barcode, &qc.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &qc)
	}
	return out, rows.Err()
}

// CountByArrival reports how many of an arrival's items are already checked,
// alongside the item total, so callers can tell a complete stage from a
// partial one in a single query.
func (r *QualityCheckRepository) CountByArrival(ctx context.Context, arrivalID int) (checked, total int, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(qc.id), COUNT(ti.id)
         FROM truck_items ti
         LEFT JOIN quality_checks qc ON qc.truck_item_id = ti.id
         WHERE ti.truck_arrival_id=$1`, arrivalID,
	).Scan(&checked, &total)
	return checked, total, err
}
