package models

import "time"

type Delivery struct {
	ID                  int        `json:"id"`
	ClientID            int        `json:"client_id"`
	Reference           string     `json:"reference"`
	DriverName          string     `json:"driver_name"`
	VehicleRegistration string     `json:"vehicle_registration"`
	Status              string     `json:"status"`
	CurrentLat          *float64   `json:"current_lat,omitempty"`
	CurrentLng          *float64   `json:"current_lng,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	Stops               []DeliveryStop `json:"stops,omitempty"`
}

type DeliveryStop struct {
	ID         int        `json:"id"`
	DeliveryID int        `json:"delivery_id"`
	Seq        int        `json:"seq"`
	Address    string     `json:"address"`
	Lat        *float64   `json:"lat,omitempty"`
	Lng        *float64   `json:"lng,omitempty"`
	Status     string     `json:"status"`
	ETA        *time.Time `json:"eta,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Delivery statuses
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusCancelled = "cancelled"
)

type CreateDeliveryRequest struct {
	ClientID            int                 `json:"client_id"`
	Reference           string              `json:"reference"`
	DriverName          string              `json:"driver_name"`
	VehicleRegistration string              `json:"vehicle_registration"`
	Stops               []CreateStopRequest `json:"stops"`
}

type CreateStopRequest struct {
	Seq     int      `json:"seq"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// PositionUpdate is pushed by the driver app and broadcast to subscribers.
type PositionUpdate struct {
	DeliveryID int     `json:"delivery_id"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Status     string  `json:"status,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
