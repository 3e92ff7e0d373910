package models

import "time"

// Client is the SaaS tenant whose goods move through the warehouses.
type Client struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	WeeklyFee float64   `json:"weekly_fee"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateClientRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	WeeklyFee float64 `json:"weekly_fee"`
}

type UpdateClientRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	WeeklyFee float64 `json:"weekly_fee"`
}
