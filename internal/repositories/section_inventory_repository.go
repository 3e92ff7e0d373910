package repositories

import (
	"context"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SectionInventoryRepository struct {
	DB *pgxpool.Pool
}

func NewSectionInventoryRepository(db *pgxpool.Pool) *SectionInventoryRepository {
	return &SectionInventoryRepository{DB: db}
}

func (r *SectionInventoryRepository) ListBySection(ctx context.Context, sectionID int) ([]*models.SectionInventoryDetail, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT si.id, si.section_id, si.product_id, si.quantity, COALESCE(si.notes, ''),
                si.created_at, si.updated_at,
                p.name, COALESCE(p.sku, ''), COALESCE(p.category, '')
         FROM section_inventory si
         JOIN products p ON p.id = si.product_id
         WHERE si.section_id=$1
         ORDER BY p.name`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SectionInventoryDetail
	for rows.Next() {
		var d models.SectionInventoryDetail
		err := rows.Scan(&d.ID, &d.SectionID, &d.ProductID, &d.Quantity, &d.Notes,
			&d.CreatedAt, &d.UpdatedAt, &d.ProductName, &d.SKU, &d.Category)
		if err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *SectionInventoryRepository) ListByProduct(ctx context.Context, productID int) ([]*models.SectionInventory, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, section_id, product_id, quantity, COALESCE(notes, ''), created_at, updated_at
         FROM section_inventory WHERE product_id=$1 ORDER BY section_id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SectionInventory
	for rows.Next() {
		var si models.SectionInventory
		err := rows.Scan(&si.ID, &si.SectionID, &si.ProductID, &si.Quantity, &si.Notes, &si.CreatedAt, &si.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &si)
	}
	return out, rows.Err()
}

func (r *SectionInventoryRepository) GetQuantity(ctx context.Context, sectionID, productID int) (int, error) {
	var qty int
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM section_inventory
         WHERE section_id=$1 AND product_id=$2`, sectionID, productID,
	).Scan(&qty)
	return qty, err
}
