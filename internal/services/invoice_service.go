package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
	"wms-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// InvoiceService issues storage invoices and renders their PDFs.
type InvoiceService struct {
	invoices *repositories.InvoiceRepository
	clients  *repositories.ClientRepository
}

func NewInvoiceService(invoices *repositories.InvoiceRepository, clients *repositories.ClientRepository) *InvoiceService {
	return &InvoiceService{invoices: invoices, clients: clients}
}

// Create issues an invoice. With UseWeeklyFee the amount comes from the
// client's weekly fee times the billed weeks, plus any additional amount.
func (s *InvoiceService) Create(ctx context.Context, req *models.CreateInvoiceRequest, userID int) (*models.Invoice, error) {
	client, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if req.Weeks < 1 {
		req.Weeks = 1
	}
	if req.AdditionalAmount < 0 {
		return nil, errors.New("additional amount cannot be negative")
	}

	amount := req.AdditionalAmount
	if req.UseWeeklyFee {
		amount += client.WeeklyFee * float64(req.Weeks)
	}
	if amount <= 0 {
		return nil, errors.New("invoice amount must be positive")
	}

	year := timeutil.Now().Year()
	seq, err := s.invoices.NextInvoiceNumber(ctx, year)
	if err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		ClientID:         req.ClientID,
		InvoiceNumber:    fmt.Sprintf("INV-%d-%04d", year, seq),
		Amount:           amount,
		Weeks:            req.Weeks,
		AdditionalAmount: req.AdditionalAmount,
		Notes:            req.Notes,
		Status:           models.InvoiceStatusIssued,
		CreatedByUserID:  userID,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, id int) (*models.InvoiceWithClient, error) {
	return s.invoices.Get(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context) ([]*models.InvoiceWithClient, error) {
	return s.invoices.List(ctx)
}

func (s *InvoiceService) MarkPaid(ctx context.Context, id int) error {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == models.InvoiceStatusPaid {
		return errors.New("invoice is already paid")
	}
	return s.invoices.UpdateStatus(ctx, id, models.InvoiceStatusPaid)
}

// RenderPDF produces the printable invoice.
func (s *InvoiceService) RenderPDF(ctx context.Context, id int) ([]byte, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Storage Invoice")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Invoice No: %s", inv.InvoiceNumber))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", inv.CreatedAt.Format(timeutil.DateLayout)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Billed To: %s", inv.ClientName))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	weekly := inv.Amount - inv.AdditionalAmount
	if weekly > 0 {
		pdf.CellFormat(120, 8, fmt.Sprintf("Storage fee (%d weeks)", inv.Weeks), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", weekly), "1", 1, "R", false, 0, "")
	}
	if inv.AdditionalAmount > 0 {
		pdf.CellFormat(120, 8, "Additional charges", "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", inv.AdditionalAmount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", inv.Amount), "1", 1, "R", false, 0, "")

	if inv.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, "Notes: "+inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
