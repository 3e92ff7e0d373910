package models

import "errors"

// Domain errors shared by repositories and services. Handlers map these to
// HTTP status codes.
var (
	ErrSectionNotFound   = errors.New("section not found")
	ErrSectionBlocked    = errors.New("section is blocked")
	ErrCapacityExceeded  = errors.New("section capacity exceeded")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStageMismatch     = errors.New("operation not allowed in current stage")
)

// ProductCredit credits received quantity to a product by name, creating the
// product when it does not exist yet (idempotent resolve).
type ProductCredit struct {
	Name     string
	Quantity int
}
