package repositories

import (
	"context"
	"errors"

	"wms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PutawaySessionRepository struct {
	DB *pgxpool.Pool
}

func NewPutawaySessionRepository(db *pgxpool.Pool) *PutawaySessionRepository {
	return &PutawaySessionRepository{DB: db}
}

func (r *PutawaySessionRepository) Create(ctx context.Context, s *models.PutawaySession) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO putaway_sessions(truck_arrival_id, stage, supervisor_name, created_by_user_id)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		s.TruckArrivalID, s.Stage, s.SupervisorName, s.CreatedByUserID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *PutawaySessionRepository) GetByArrival(ctx context.Context, arrivalID int) (*models.PutawaySession, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, truck_arrival_id, stage, supervisor_name, created_by_user_id, created_at, updated_at
         FROM putaway_sessions WHERE truck_arrival_id=$1`, arrivalID)

	var s models.PutawaySession
	err := row.Scan(&s.ID, &s.TruckArrivalID, &s.Stage, &s.SupervisorName, &s.CreatedByUserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PutawaySessionRepository) UpdateStage(ctx context.Context, arrivalID int, stage string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE putaway_sessions SET stage=$2, updated_at=NOW() WHERE truck_arrival_id=$1`,
		arrivalID, stage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("putaway session not found")
	}
	return nil
}

func (r *PutawaySessionRepository) SetSupervisor(ctx context.Context, arrivalID int, supervisor string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE putaway_sessions SET supervisor_name=$2, updated_at=NOW() WHERE truck_arrival_id=$1`,
		arrivalID, supervisor)
	return err
}

// ListActive returns sessions that have not reached the complete stage.
func (r *PutawaySessionRepository) ListActive(ctx context.Context) ([]*models.PutawaySession, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, truck_arrival_id, stage, supervisor_name, created_by_user_id, created_at, updated_at
         FROM putaway_sessions WHERE stage <> 'complete' ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PutawaySession
	for rows.Next() {
		var s models.PutawaySession
		err := rows.Scan(&s.ID, &s.TruckArrivalID, &s.Stage, &s.SupervisorName, &s.CreatedByUserID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
