package repositories

import (
	"context"
	"errors"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SectionRepository struct {
	DB *pgxpool.Pool
}

func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{DB: db}
}

const sectionColumns = `id, layout_id, section_name, section_type, capacity, current_usage, is_blocked, row_index, column_index, created_at, updated_at`

func scanSection(row pgx.Row) (*models.WarehouseSection, error) {
	var s models.WarehouseSection
	err := row.Scan(&s.ID, &s.LayoutID, &s.SectionName, &s.SectionType, &s.Capacity,
		&s.CurrentUsage, &s.IsBlocked, &s.RowIndex, &s.ColumnIndex, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSectionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) Create(ctx context.Context, s *models.WarehouseSection) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO warehouse_sections(layout_id, section_name, section_type, capacity, row_index, column_index)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, current_usage, is_blocked, created_at, updated_at`,
		s.LayoutID, s.SectionName, s.SectionType, s.Capacity, s.RowIndex, s.ColumnIndex,
	).Scan(&s.ID, &s.CurrentUsage, &s.IsBlocked, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SectionRepository) Get(ctx context.Context, id int) (*models.WarehouseSection, error) {
	return scanSection(r.DB.QueryRow(ctx,
		`SELECT `+sectionColumns+` FROM warehouse_sections WHERE id=$1`, id))
}

func (r *SectionRepository) ListByLayout(ctx context.Context, layoutID int) ([]*models.WarehouseSection, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+sectionColumns+`
         FROM warehouse_sections WHERE layout_id=$1
         ORDER BY row_index, column_index`, layoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.WarehouseSection
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SectionRepository) Update(ctx context.Context, s *models.WarehouseSection) error {
	return r.DB.QueryRow(ctx,
		`UPDATE warehouse_sections
         SET section_name=$1, section_type=$2, capacity=$3, is_blocked=$4, updated_at=NOW()
         WHERE id=$5
         RETURNING updated_at`,
		s.SectionName, s.SectionType, s.Capacity, s.IsBlocked, s.ID,
	).Scan(&s.UpdatedAt)
}

func (r *SectionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM warehouse_sections WHERE id=$1`, id)
	return err
}

// GetUsage reads the capacity snapshot for one section.
func (r *SectionRepository) GetUsage(ctx context.Context, sectionID int) (*models.SectionUsage, error) {
	var u models.SectionUsage
	err := r.DB.QueryRow(ctx,
		`SELECT id, capacity, current_usage, is_blocked
         FROM warehouse_sections WHERE id=$1`, sectionID,
	).Scan(&u.SectionID, &u.Capacity, &u.CurrentUsage, &u.IsBlocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSectionNotFound
		}
		return nil, err
	}
	return &u, nil
}

// AddUsage reserves qty units of capacity. The WHERE clause is the source of
// truth for the capacity bound: a concurrent writer that would push usage past
// capacity simply matches no row.
func (r *SectionRepository) AddUsage(ctx context.Context, sectionID, qty int) (int, error) {
	var usage int
	err := r.DB.QueryRow(ctx,
		`UPDATE warehouse_sections
         SET current_usage = current_usage + $2, updated_at=NOW()
         WHERE id=$1 AND is_blocked=FALSE AND current_usage + $2 <= capacity
         RETURNING current_usage`,
		sectionID, qty,
	).Scan(&usage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.classifyReserveFailure(ctx, sectionID)
		}
		return 0, err
	}
	return usage, nil
}

func (r *SectionRepository) classifyReserveFailure(ctx context.Context, sectionID int) error {
	u, err := r.GetUsage(ctx, sectionID)
	if err != nil {
		return err
	}
	if u.IsBlocked {
		return models.ErrSectionBlocked
	}
	return models.ErrCapacityExceeded
}

// SubUsage releases qty units, flooring at zero rather than failing.
func (r *SectionRepository) SubUsage(ctx context.Context, sectionID, qty int) (int, error) {
	var usage int
	err := r.DB.QueryRow(ctx,
		`UPDATE warehouse_sections
         SET current_usage = GREATEST(current_usage - $2, 0), updated_at=NOW()
         WHERE id=$1
         RETURNING current_usage`,
		sectionID, qty,
	).Scan(&usage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrSectionNotFound
		}
		return 0, err
	}
	return usage, nil
}

// OccupancyStats aggregates usage across all sections.
type OccupancyStats struct {
	TotalSections int `json:"total_sections"`
	TotalCapacity int `json:"total_capacity"`
	TotalUsage    int `json:"total_usage"`
	BlockedCount  int `json:"blocked_count"`
	FullCount     int `json:"full_count"`
}

func (r *SectionRepository) GetOccupancyStats(ctx context.Context) (*OccupancyStats, error) {
	var st OccupancyStats
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*),
                COALESCE(SUM(capacity), 0),
                COALESCE(SUM(current_usage), 0),
                COUNT(*) FILTER (WHERE is_blocked),
                COUNT(*) FILTER (WHERE capacity > 0 AND current_usage >= capacity)
         FROM warehouse_sections`,
	).Scan(&st.TotalSections, &st.TotalCapacity, &st.TotalUsage, &st.BlockedCount, &st.FullCount)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
