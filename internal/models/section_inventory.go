package models

import "time"

// SectionInventory is stock of one product held in one section. There is at
// most one row per (section, product) pair; repeated placements merge by
// adding quantities.
type SectionInventory struct {
	ID        int       `json:"id"`
	SectionID int       `json:"section_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionInventoryDetail joins in product fields for listing endpoints.
type SectionInventoryDetail struct {
	SectionInventory
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Category    string `json:"category"`
}

// PutawayAssignment routes (part of) one truck item's quantity to a section.
type PutawayAssignment struct {
	TruckItemID int `json:"truck_item_id"`
	SectionID   int `json:"section_id"`
	Quantity    int `json:"quantity"`
}

// PutawayRequest finalizes the putaway stage for an arrival.
type PutawayRequest struct {
	Assignments []PutawayAssignment `json:"assignments"`
}
