package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wms-backend/internal/cache"
	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
)

// WarehouseService manages warehouses, layouts, and sections, and serves the
// occupancy views backing the dashboard.
type WarehouseService struct {
	warehouses *repositories.WarehouseRepository
	sections   *repositories.SectionRepository
	inventory  *repositories.SectionInventoryRepository
}

func NewWarehouseService(
	warehouses *repositories.WarehouseRepository,
	sections *repositories.SectionRepository,
	inventory *repositories.SectionInventoryRepository,
) *WarehouseService {
	return &WarehouseService{warehouses: warehouses, sections: sections, inventory: inventory}
}

func (s *WarehouseService) Create(ctx context.Context, req *models.CreateWarehouseRequest) (*models.Warehouse, error) {
	if req.Name == "" {
		return nil, errors.New("warehouse name is required")
	}
	if req.ClientID <= 0 {
		return nil, errors.New("client is required")
	}
	w := &models.Warehouse{ClientID: req.ClientID, Name: req.Name, Location: req.Location}
	if err := s.warehouses.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WarehouseService) Get(ctx context.Context, id int) (*models.Warehouse, error) {
	return s.warehouses.Get(ctx, id)
}

func (s *WarehouseService) List(ctx context.Context) ([]*models.Warehouse, error) {
	return s.warehouses.List(ctx)
}

func (s *WarehouseService) ListByClient(ctx context.Context, clientID int) ([]*models.Warehouse, error) {
	return s.warehouses.ListByClient(ctx, clientID)
}

func (s *WarehouseService) Delete(ctx context.Context, id int) error {
	return s.warehouses.Delete(ctx, id)
}

func (s *WarehouseService) CreateLayout(ctx context.Context, req *models.CreateLayoutRequest) (*models.WarehouseLayout, error) {
	if req.Name == "" {
		return nil, errors.New("layout name is required")
	}
	if req.Rows < 1 || req.Columns < 1 {
		return nil, fmt.Errorf("layout grid must be at least 1x1, got %dx%d", req.Rows, req.Columns)
	}
	l := &models.WarehouseLayout{
		WarehouseID: req.WarehouseID,
		Name:        req.Name,
		Rows:        req.Rows,
		Columns:     req.Columns,
	}
	if err := s.warehouses.CreateLayout(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *WarehouseService) ListLayouts(ctx context.Context, warehouseID int) ([]*models.WarehouseLayout, error) {
	return s.warehouses.ListLayouts(ctx, warehouseID)
}

func (s *WarehouseService) DeleteLayout(ctx context.Context, id int) error {
	cache.InvalidateOccupancy(ctx, id)
	return s.warehouses.DeleteLayout(ctx, id)
}

func (s *WarehouseService) CreateSection(ctx context.Context, req *models.CreateSectionRequest) (*models.WarehouseSection, error) {
	if req.SectionName == "" {
		return nil, errors.New("section name is required")
	}
	if req.Capacity < 0 {
		return nil, errors.New("section capacity cannot be negative")
	}
	layout, err := s.warehouses.GetLayout(ctx, req.LayoutID)
	if err != nil {
		return nil, err
	}
	if req.RowIndex < 0 || req.RowIndex >= layout.Rows || req.ColumnIndex < 0 || req.ColumnIndex >= layout.Columns {
		return nil, fmt.Errorf("position (%d,%d) is outside the %dx%d grid",
			req.RowIndex, req.ColumnIndex, layout.Rows, layout.Columns)
	}

	sec := &models.WarehouseSection{
		LayoutID:    req.LayoutID,
		SectionName: req.SectionName,
		SectionType: req.SectionType,
		Capacity:    req.Capacity,
		RowIndex:    req.RowIndex,
		ColumnIndex: req.ColumnIndex,
	}
	if sec.SectionType == "" {
		sec.SectionType = "storage"
	}
	if err := s.sections.Create(ctx, sec); err != nil {
		return nil, err
	}
	cache.InvalidateOccupancy(ctx, req.LayoutID)
	return sec, nil
}

func (s *WarehouseService) GetSection(ctx context.Context, id int) (*models.WarehouseSection, error) {
	return s.sections.Get(ctx, id)
}

func (s *WarehouseService) ListSections(ctx context.Context, layoutID int) ([]*models.WarehouseSection, error) {
	return s.sections.ListByLayout(ctx, layoutID)
}

// UpdateSection changes section metadata. Shrinking capacity below current
// usage is rejected; existing stock would violate the usage bound.
func (s *WarehouseService) UpdateSection(ctx context.Context, id int, req *models.UpdateSectionRequest) (*models.WarehouseSection, error) {
	sec, err := s.sections.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Capacity < sec.CurrentUsage {
		return nil, fmt.Errorf("capacity %d is below current usage %d", req.Capacity, sec.CurrentUsage)
	}
	sec.SectionName = req.SectionName
	sec.SectionType = req.SectionType
	sec.Capacity = req.Capacity
	sec.IsBlocked = req.IsBlocked
	if err := s.sections.Update(ctx, sec); err != nil {
		return nil, err
	}
	cache.InvalidateOccupancy(ctx, sec.LayoutID)
	return sec, nil
}

// DeleteSection removes an empty section. Sections holding stock cannot be
// deleted.
func (s *WarehouseService) DeleteSection(ctx context.Context, id int) error {
	sec, err := s.sections.Get(ctx, id)
	if err != nil {
		return err
	}
	if sec.CurrentUsage > 0 {
		return fmt.Errorf("section %d still holds %d units", id, sec.CurrentUsage)
	}
	if err := s.sections.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateOccupancy(ctx, sec.LayoutID)
	return nil
}

func (s *WarehouseService) SectionInventory(ctx context.Context, sectionID int) ([]*models.SectionInventoryDetail, error) {
	return s.inventory.ListBySection(ctx, sectionID)
}

// OccupancyStats serves the dashboard aggregate, via the cache when warm.
func (s *WarehouseService) OccupancyStats(ctx context.Context) (*repositories.OccupancyStats, error) {
	if data, ok := cache.GetCachedOccupancyStats(ctx); ok {
		var st repositories.OccupancyStats
		if err := json.Unmarshal(data, &st); err == nil {
			return &st, nil
		}
	}

	st, err := s.sections.GetOccupancyStats(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(st); err == nil {
		cache.CacheOccupancyStats(ctx, data)
	}
	return st, nil
}

// LayoutOccupancy returns the section grid for one layout, cached briefly
// since the dashboard polls it.
func (s *WarehouseService) LayoutOccupancy(ctx context.Context, layoutID int) ([]*models.WarehouseSection, error) {
	if data, ok := cache.GetCachedLayoutData(ctx, layoutID); ok {
		var sections []*models.WarehouseSection
		if err := json.Unmarshal(data, &sections); err == nil {
			return sections, nil
		}
	}

	sections, err := s.sections.ListByLayout(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(sections); err == nil {
		cache.CacheLayoutData(ctx, layoutID, data)
	}
	return sections, nil
}
