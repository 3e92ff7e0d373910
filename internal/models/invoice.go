package models

import "time"

// Invoice represents a generated storage invoice. Amount is computed as
// weekly_fee * weeks + additional_amount at creation time.
type Invoice struct {
	ID               int       `json:"id"`
	ClientID         int       `json:"client_id"`
	InvoiceNumber    string    `json:"invoice_number"`
	Amount           float64   `json:"amount"`
	Weeks            int       `json:"weeks"`
	AdditionalAmount float64   `json:"additional_amount"`
	Notes            string    `json:"notes"`
	Status           string    `json:"status"`
	CreatedByUserID  int       `json:"created_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// Invoice statuses
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
)

type CreateInvoiceRequest struct {
	ClientID         int     `json:"client_id"`
	UseWeeklyFee     bool    `json:"use_weekly_fee"`
	Weeks            int     `json:"weeks"`
	AdditionalAmount float64 `json:"additional_amount"`
	Notes            string  `json:"notes"`
}

// InvoiceWithClient includes the client name for listings and the PDF
type InvoiceWithClient struct {
	Invoice
	ClientName string `json:"client_name"`
}
