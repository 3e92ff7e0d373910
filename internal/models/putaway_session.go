package models

import "time"

// PutawaySession persists intake workflow progress so a client reload resumes
// from the stored stage instead of losing the session.
type PutawaySession struct {
	ID              int       `json:"id"`
	TruckArrivalID  int       `json:"truck_arrival_id"`
	Stage           string    `json:"stage"`
	SupervisorName  string    `json:"supervisor_name"`
	CreatedByUserID int       `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Workflow stages, strictly forward
const (
	StageArrivalPending = "arrival_pending"
	StageUnloading      = "unloading"
	StageQualityCheck   = "quality_check"
	StagePutaway        = "putaway"
	StageComplete       = "complete"
)
