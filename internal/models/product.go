package models

import "time"

// Product is the canonical inventory record per client. Quantity is the
// unallocated stock not yet placed into any section.
type Product struct {
	ID         int       `json:"id"`
	ClientID   int       `json:"client_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	SKU        string    `json:"sku"`
	Barcode    string    `json:"barcode"`
	Category   string    `json:"category"`
	Condition  string    `json:"condition"`
	Price      float64   `json:"price"`
	Dimensions string    `json:"dimensions"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	ClientID   int     `json:"client_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	SKU        string  `json:"sku"`
	Barcode    string  `json:"barcode"`
	Category   string  `json:"category"`
	Condition  string  `json:"condition"`
	Price      float64 `json:"price"`
	Dimensions string  `json:"dimensions"`
}

type UpdateProductRequest struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	SKU        string  `json:"sku"`
	Barcode    string  `json:"barcode"`
	Category   string  `json:"category"`
	Condition  string  `json:"condition"`
	Price      float64 `json:"price"`
	Dimensions string  `json:"dimensions"`
}

// MoveStockRequest moves unallocated product stock into a section
// (inventory-page path of the reconciler).
type MoveStockRequest struct {
	SectionID int    `json:"section_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// TransferStockRequest moves stock between two sections.
type TransferStockRequest struct {
	FromSectionID int    `json:"from_section_id"`
	ToSectionID   int    `json:"to_section_id"`
	ProductID     int    `json:"product_id"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
}
