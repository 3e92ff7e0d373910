package models

import "time"

type ArrivalEvent struct {
	ID              int       `json:"id"`
	TruckArrivalID  int       `json:"truck_arrival_id"`
	EventType       string    `json:"event_type"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedByUserID int       `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// Event type constants
const (
	EventTypeArrival      = "ARRIVAL_REGISTERED"
	EventTypeUnloading    = "UNLOADING"
	EventTypeQualityCheck = "QUALITY_CHECK"
	EventTypePutaway      = "PUTAWAY"
	EventTypeCompleted    = "COMPLETED"
)

// Status constants
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)
