package models

import "time"

type Warehouse struct {
	ID        int       `json:"id"`
	ClientID  int       `json:"client_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

type WarehouseLayout struct {
	ID          int       `json:"id"`
	WarehouseID int       `json:"warehouse_id"`
	Name        string    `json:"name"`
	Rows        int       `json:"rows"`
	Columns     int       `json:"columns"`
	CreatedAt   time.Time `json:"created_at"`
}

// WarehouseSection is a bounded storage slot inside a layout. CurrentUsage is
// the sum of section_inventory quantities routed to it and must never exceed
// Capacity.
type WarehouseSection struct {
	ID           int       `json:"id"`
	LayoutID     int       `json:"layout_id"`
	SectionName  string    `json:"section_name"`
	SectionType  string    `json:"section_type"`
	Capacity     int       `json:"capacity"`
	CurrentUsage int       `json:"current_usage"`
	IsBlocked    bool      `json:"is_blocked"`
	RowIndex     int       `json:"row_index"`
	ColumnIndex  int       `json:"column_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateWarehouseRequest struct {
	ClientID int    `json:"client_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type CreateLayoutRequest struct {
	WarehouseID int    `json:"warehouse_id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
}

type CreateSectionRequest struct {
	LayoutID    int    `json:"layout_id"`
	SectionName string `json:"section_name"`
	SectionType string `json:"section_type"`
	Capacity    int    `json:"capacity"`
	RowIndex    int    `json:"row_index"`
	ColumnIndex int    `json:"column_index"`
}

type UpdateSectionRequest struct {
	SectionName string `json:"section_name"`
	SectionType string `json:"section_type"`
	Capacity    int    `json:"capacity"`
	IsBlocked   bool   `json:"is_blocked"`
}

// SectionUsage answers "can N units fit here" queries
type SectionUsage struct {
	SectionID    int  `json:"section_id"`
	Capacity     int  `json:"capacity"`
	CurrentUsage int  `json:"current_usage"`
	IsBlocked    bool `json:"is_blocked"`
}
