package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"wms-backend/internal/repositories"
)

// ReportService produces CSV exports for the back office.
type ReportService struct {
	sections  *repositories.SectionRepository
	inventory *repositories.SectionInventoryRepository
	arrivals  *repositories.TruckArrivalRepository
	items     *repositories.TruckItemRepository
}

func NewReportService(
	sections *repositories.SectionRepository,
	inventory *repositories.SectionInventoryRepository,
	arrivals *repositories.TruckArrivalRepository,
	items *repositories.TruckItemRepository,
) *ReportService {
	return &ReportService{
		sections:  sections,
		inventory: inventory,
		arrivals:  arrivals,
		items:     items,
	}
}

// OccupancyCSV exports every section of a layout with usage figures.
func (s *ReportService) OccupancyCSV(ctx context.Context, layoutID int) ([]byte, error) {
	sections, err := s.sections.ListByLayout(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"section", "type", "capacity", "usage", "free", "blocked"}); err != nil {
		return nil, err
	}
	for _, sec := range sections {
		rec := []string{
			sec.SectionName,
			sec.SectionType,
			strconv.Itoa(sec.Capacity),
			strconv.Itoa(sec.CurrentUsage),
			strconv.Itoa(sec.Capacity - sec.CurrentUsage),
			strconv.FormatBool(sec.IsBlocked),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// SectionInventoryCSV exports the stock held in one section.
func (s *ReportService) SectionInventoryCSV(ctx context.Context, sectionID int) ([]byte, error) {
	rows, err := s.inventory.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"product", "sku", "category", "quantity", "notes"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{r.ProductName, r.SKU, r.Category, strconv.Itoa(r.Quantity), r.Notes}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ArrivalsCSV exports recent truck arrivals with their item counts.
func (s *ReportService) ArrivalsCSV(ctx context.Context, limit int) ([]byte, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	arrivals, err := s.arrivals.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"arrival_id", "vehicle", "customer", "driver", "arrived_at", "items"}); err != nil {
		return nil, err
	}
	for _, a := range arrivals {
		count, err := s.items.CountByArrival(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		rec := []string{
			strconv.Itoa(a.ID),
			a.VehicleRegistration,
			a.CustomerName,
			a.DriverName,
			a.ArrivalTime.Format("2006-01-02 15:04"),
			strconv.Itoa(count),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ReportFilename builds the attachment name for a report download.
func ReportFilename(kind string, id int) string {
	if id > 0 {
		return fmt.Sprintf("%s-%d.csv", kind, id)
	}
	return kind + ".csv"
}
