package models

import "time"

// TruckArrival is created once per intake session and is immutable afterward.
type TruckArrival struct {
	ID                  int       `json:"id"`
	ClientID            int       `json:"client_id"`
	WarehouseID         int       `json:"warehouse_id"`
	VehicleRegistration string    `json:"vehicle_registration"`
	CustomerName        string    `json:"customer_name"`
	DriverName          string    `json:"driver_name"`
	VehicleSize         string    `json:"vehicle_size"`
	LoadType            string    `json:"load_type"`
	ArrivalTime         time.Time `json:"arrival_time"`
	CreatedByUserID     int       `json:"created_by_user_id"`
	CreatedAt           time.Time `json:"created_at"`
}

type CreateTruckArrivalRequest struct {
	ClientID            int    `json:"client_id"`
	WarehouseID         int    `json:"warehouse_id"`
	VehicleRegistration string `json:"vehicle_registration"`
	CustomerName        string `json:"customer_name"`
	DriverName          string `json:"driver_name"`
	VehicleSize         string `json:"vehicle_size"`
	LoadType            string `json:"load_type"`
}

// TruckItem is a line item unloaded from an arriving vehicle, prior to being
// split into section-level inventory.
type TruckItem struct {
	ID             int       `json:"id"`
	TruckArrivalID int       `json:"truck_arrival_id"`
	Description    string    `json:"description"`
	Quantity       int       `json:"quantity"`
	Condition      string    `json:"condition"`
	CreatedAt      time.Time `json:"created_at"`
}

// Item conditions
const (
	ConditionGood    = "Good"
	ConditionDamaged = "Damaged"
	ConditionFragile = "Fragile"
	ConditionExpired = "Expired"
)

type CreateTruckItemRequest struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Condition   string `json:"condition"`
}
