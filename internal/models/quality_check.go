package models

import "time"

// QualityCheck is the pass/fail inspection gate applied to a truck item.
// One-to-one with TruckItem; created once and never mutated.
type QualityCheck struct {
	ID             int       `json:"id"`
	TruckItemID    int       `json:"truck_item_id"`
	Status         string    `json:"status"` // ok or damaged
	DamageImageURL *string   `json:"damage_image_url,omitempty"`
	SupervisorName string    `json:"supervisor_name"`
	Barcode        string    `json:"barcode"`
	CreatedAt      time.Time `json:"created_at"`
}

// Quality check statuses
const (
	QualityStatusOK      = "ok"
	QualityStatusDamaged = "damaged"
)

// QualityCheckInput is one row of the batch submitted at quality-check
// completion (one per truck item).
type QualityCheckInput struct {
	TruckItemID    int     `json:"truck_item_id"`
	Status         string  `json:"status"`
	DamageImageURL *string `json:"damage_image_url,omitempty"`
}

// SubmitQualityChecksRequest finalizes the quality-check stage for an arrival.
type SubmitQualityChecksRequest struct {
	SupervisorName string              `json:"supervisor_name"`
	Checks         []QualityCheckInput `json:"checks"`
}
