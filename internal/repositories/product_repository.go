package repositories

import (
	"context"
	"errors"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, client_id, name, quantity, COALESCE(sku, ''), COALESCE(barcode, ''), COALESCE(category, ''), condition, price, COALESCE(dimensions, ''), created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Quantity, &p.SKU, &p.Barcode,
		&p.Category, &p.Condition, &p.Price, &p.Dimensions, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(client_id, name, quantity, sku, barcode, category, condition, price, dimensions)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		p.ClientID, p.Name, p.Quantity, p.SKU, p.Barcode, p.Category, p.Condition, p.Price, p.Dimensions,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	return scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id))
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) ListByClient(ctx context.Context, clientID int) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE client_id=$1 ORDER BY name`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*models.Product, error) {
	var out []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`UPDATE products
         SET name=$1, quantity=$2, sku=$3, barcode=$4, category=$5, condition=$6, price=$7, dimensions=$8, updated_at=NOW()
         WHERE id=$9
         RETURNING updated_at`,
		p.Name, p.Quantity, p.SKU, p.Barcode, p.Category, p.Condition, p.Price, p.Dimensions, p.ID,
	).Scan(&p.UpdatedAt)
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

// DeductStock decrements unallocated stock, failing when the product holds
// fewer than qty units.
func (r *ProductRepository) DeductStock(ctx context.Context, productID, qty int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE products
         SET quantity = quantity - $2, updated_at=NOW()
         WHERE id=$1 AND quantity >= $2`,
		productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrInsufficientStock
	}
	return nil
}

// AddStock returns units to the unallocated pool.
func (r *ProductRepository) AddStock(ctx context.Context, productID, qty int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE products SET quantity = quantity + $2, updated_at=NOW() WHERE id=$1`,
		productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}
