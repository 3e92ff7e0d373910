package repositories

import (
	"context"
	"errors"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReconcileTx exposes the inventory primitives that must commit or roll back
// together when a putaway batch, stock move, or transfer is reconciled.
type ReconcileTx interface {
	// ResolveProducts upserts one product per credit under (client, name) and
	// adds the credited quantity to its unallocated stock. Returns name to
	// product ID. Resolving the same name twice hits the same row.
	ResolveProducts(ctx context.Context, clientID int, credits []models.ProductCredit) (map[string]int, error)

	// MergeSectionInventory adds qty to the (section, product) inventory row,
	// creating it when absent.
	MergeSectionInventory(ctx context.Context, sectionID, productID, qty int, notes string) error

	// ReserveSection claims qty units of section capacity, failing with
	// models.ErrCapacityExceeded or models.ErrSectionBlocked when it cannot.
	ReserveSection(ctx context.Context, sectionID, qty int) error

	// ReleaseSection returns qty units of section capacity, flooring at zero.
	ReleaseSection(ctx context.Context, sectionID, qty int) error

	// DeductProductStock removes qty units of unallocated product stock.
	DeductProductStock(ctx context.Context, productID, qty int) error

	// DeductSectionInventory removes qty units of a (section, product) row,
	// deleting the row when it reaches zero.
	DeductSectionInventory(ctx context.Context, sectionID, productID, qty int) error
}

// ReconcileStore runs reconcile steps inside a single database transaction.
type ReconcileStore struct {
	DB *pgxpool.Pool
}

func NewReconcileStore(db *pgxpool.Pool) *ReconcileStore {
	return &ReconcileStore{DB: db}
}

// WithinTx begins a transaction, passes it to fn, and commits only when fn
// returns nil. Any error rolls the whole batch back.
func (s *ReconcileStore) WithinTx(ctx context.Context, fn func(ReconcileTx) error) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&reconcileTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type reconcileTx struct {
	tx pgx.Tx
}

func (t *reconcileTx) ResolveProducts(ctx context.Context, clientID int, credits []models.ProductCredit) (map[string]int, error) {
	ids := make(map[string]int, len(credits))
	for _, c := range credits {
		var id int
		err := t.tx.QueryRow(ctx,
			`INSERT INTO products(client_id, name, quantity)
             VALUES($1, $2, $3)
             ON CONFLICT (client_id, name)
             DO UPDATE SET quantity = products.quantity + EXCLUDED.quantity, updated_at=NOW()
             RETURNING id`,
			clientID, c.Name, c.Quantity,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[c.Name] = id
	}
	return ids, nil
}

func (t *reconcileTx) MergeSectionInventory(ctx context.Context, sectionID, productID, qty int, notes string) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO section_inventory(section_id, product_id, quantity, notes)
         VALUES($1, $2, $3, $4)
         ON CONFLICT (section_id, product_id)
         DO UPDATE SET quantity = section_inventory.quantity + EXCLUDED.quantity, updated_at=NOW()`,
		sectionID, productID, qty, notes)
	return err
}

func (t *reconcileTx) ReserveSection(ctx context.Context, sectionID, qty int) error {
	var usage int
	err := t.tx.QueryRow(ctx,
		`UPDATE warehouse_sections
         SET current_usage = current_usage + $2, updated_at=NOW()
         WHERE id=$1 AND is_blocked=FALSE AND current_usage + $2 <= capacity
         RETURNING current_usage`,
		sectionID, qty,
	).Scan(&usage)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var blocked bool
	err = t.tx.QueryRow(ctx,
		`SELECT is_blocked FROM warehouse_sections WHERE id=$1`, sectionID,
	).Scan(&blocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrSectionNotFound
		}
		return err
	}
	if blocked {
		return models.ErrSectionBlocked
	}
	return models.ErrCapacityExceeded
}

func (t *reconcileTx) ReleaseSection(ctx context.Context, sectionID, qty int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE warehouse_sections
         SET current_usage = GREATEST(current_usage - $2, 0), updated_at=NOW()
         WHERE id=$1`,
		sectionID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrSectionNotFound
	}
	return nil
}

func (t *reconcileTx) DeductProductStock(ctx context.Context, productID, qty int) error {
	tag, err := t.tx.Exec(ctx,
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

func (t *reconcileTx) DeductSectionInventory(ctx context.Context, sectionID, productID, qty int) error {
	var held int
	err := t.tx.QueryRow(ctx,
		`SELECT quantity FROM section_inventory
         WHERE section_id=$1 AND product_id=$2
         FOR UPDATE`,
		sectionID, productID,
	).Scan(&held)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrInsufficientStock
		}
		return err
	}
	if held < qty {
		return models.ErrInsufficientStock
	}
	if held == qty {
		_, err = t.tx.Exec(ctx,
			`DELETE FROM section_inventory WHERE section_id=$1 AND product_id=$2`,
			sectionID, productID)
		return err
	}
	_, err = t.tx.Exec(ctx,
		`UPDATE section_inventory
         SET quantity = quantity - $3, updated_at=NOW()
         WHERE section_id=$1 AND product_id=$2`,
		sectionID, productID, qty)
	return err
}
