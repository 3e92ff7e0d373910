package repositories

import (
	"context"
	"errors"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO invoices(client_id, invoice_number, amount, weeks, additional_amount, notes, status, created_by_user_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at`,
		inv.ClientID, inv.InvoiceNumber, inv.Amount, inv.Weeks, inv.AdditionalAmount,
		inv.Notes, inv.Status, inv.CreatedByUserID,
	).Scan(&inv.ID, &inv.CreatedAt)
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.InvoiceWithClient, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT i.id, i.client_id, i.invoice_number, i.amount, i.weeks, i.additional_amount,
                COALESCE(i.notes, ''), i.status, i.created_by_user_id, i.created_at, c.name
         FROM invoices i
         JOIN clients c ON c.id = i.client_id
         WHERE i.id=$1`, id)

	var v models.InvoiceWithClient
	err := row.Scan(&v.ID, &v.ClientID, &v.InvoiceNumber, &v.Amount, &v.Weeks, &v.AdditionalAmount,
		&v.Notes, &v.Status, &v.CreatedByUserID, &v.CreatedAt, &v.ClientName)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]*models.InvoiceWithClient, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.client_id, i.invoice_number, i.amount, i.weeks, i.additional_amount,
                COALESCE(i.notes, ''), i.status, i.created_by_user_id, i.created_at, c.name
         FROM invoices i
         JOIN clients c ON c.id = i.client_id
         ORDER BY i.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.InvoiceWithClient
	for rows.Next() {
		var v models.InvoiceWithClient
		err := rows.Scan(&v.ID, &v.ClientID, &v.InvoiceNumber, &v.Amount, &v.Weeks, &v.AdditionalAmount,
			&v.Notes, &v.Status, &v.CreatedByUserID, &v.CreatedAt, &v.ClientName)
		if err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("invoice not found")
	}
	return nil
}

// NextInvoiceNumber derives a sequence scoped to the current year.
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context, year int) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) + 1 FROM invoices
         WHERE EXTRACT(YEAR FROM created_at) = $1`, year,
	).Scan(&n)
	return n, err
}
