package services

import (
	"context"
	"errors"

	"wms-backend/internal/cache"
	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
)

// ProductService manages the product catalogue and the stock movements
// initiated from the inventory pages.
type ProductService struct {
	products   *repositories.ProductRepository
	sections   *repositories.SectionRepository
	inventory  *repositories.SectionInventoryRepository
	reconciler *ReconcilerService
}

func NewProductService(
	products *repositories.ProductRepository,
	sections *repositories.SectionRepository,
	inventory *repositories.SectionInventoryRepository,
	reconciler *ReconcilerService,
) *ProductService {
	return &ProductService{products: products, sections: sections, inventory: inventory, reconciler: reconciler}
}

func (s *ProductService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, errors.New("product name is required")
	}
	if req.ClientID <= 0 {
		return nil, errors.New("client is required")
	}
	if req.Quantity < 0 {
		return nil, errors.New("quantity cannot be negative")
	}

	p := &models.Product{
		ClientID:   req.ClientID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		SKU:        req.SKU,
		Barcode:    req.Barcode,
		Category:   req.Category,
		Condition:  req.Condition,
		Price:      req.Price,
		Dimensions: req.Dimensions,
	}
	if p.Condition == "" {
		p.Condition = models.ConditionGood
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) ListByClient(ctx context.Context, clientID int) ([]*models.Product, error) {
	return s.products.ListByClient(ctx, clientID)
}

func (s *ProductService) Update(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, errors.New("product name is required")
	}
	if req.Quantity < 0 {
		return nil, errors.New("quantity cannot be negative")
	}
	p.Name = req.Name
	p.Quantity = req.Quantity
	p.SKU = req.SKU
	p.Barcode = req.Barcode
	p.Category = req.Category
	p.Condition = req.Condition
	p.Price = req.Price
	p.Dimensions = req.Dimensions
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product that holds no section inventory.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	rows, err := s.inventory.ListByProduct(ctx, id)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return errors.New("product still has stock placed in sections")
	}
	return s.products.Delete(ctx, id)
}

// MoveToSection places unallocated product stock into a section.
func (s *ProductService) MoveToSection(ctx context.Context, productID int, req *models.MoveStockRequest) error {
	if err := s.reconciler.MoveToSection(ctx, productID, req.SectionID, req.Quantity, req.Notes); err != nil {
		return err
	}
	s.invalidateOccupancy(ctx, req.SectionID)
	return nil
}

// Transfer moves placed stock between two sections.
func (s *ProductService) Transfer(ctx context.Context, req *models.TransferStockRequest) error {
	if err := s.reconciler.Transfer(ctx, req); err != nil {
		return err
	}
	s.invalidateOccupancy(ctx, req.FromSectionID, req.ToSectionID)
	return nil
}

// Placements lists where a product's stock currently sits.
func (s *ProductService) Placements(ctx context.Context, productID int) ([]*models.SectionInventory, error) {
	return s.inventory.ListByProduct(ctx, productID)
}

func (s *ProductService) invalidateOccupancy(ctx context.Context, sectionIDs ...int) {
	layoutIDs := make([]int, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		sec, err := s.sections.Get(ctx, id)
		if err != nil {
			continue
		}
		layoutIDs = append(layoutIDs, sec.LayoutID)
	}
	cache.InvalidateOccupancy(ctx, layoutIDs...)
}
