package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/asiaagro/silage-backend/internal/cache"
	"github.com/asiaagro/silage-backend/internal/ledger"
	"github.com/asiaagro/silage-backend/internal/metrics"
	"github.com/asiaagro/silage-backend/internal/models"
	"github.com/asiaagro/silage-backend/internal/repositories"
)

// SaleService handles client silage sales: creation with auto-assigned bill
// numbers, incremental payments, the dashboard summary and invoice PDFs.
type SaleService struct {
	SaleRepo *repositories.SaleRepository
	Invoices *InvoiceService
	Archive  *ArchiveService
}

func NewSaleService(saleRepo *repositories.SaleRepository, invoices *InvoiceService, archive *ArchiveService) *SaleService {
	return &SaleService{SaleRepo: saleRepo, Invoices: invoices, Archive: archive}
}

func (s *SaleService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {
	derived, errs := ledger.Recompute(ledger.ClientSale, ledger.Fields{
		"clientName":  req.ClientName,
		"weightinKgs": num(req.WeightInKgs),
		"pricePerKg":  num(req.PricePerKg),
		"discount":    num(req.Discount),
		"amountPaid":  num(req.AmountPaid),
	})
	if !errs.OK() {
		metrics.ValidationRejections.WithLabelValues(ledger.ClientSale.String()).Inc()
		return nil, &ValidationError{Fields: errs}
	}

	billNo := strings.TrimSpace(req.BillNo)
	if billNo == "" {
		var err error
		billNo, err = s.SaleRepo.NextBillNumber(ctx)
		if err != nil {
			return nil, err
		}
	}

	sale := &models.Sale{
		BillNo:             billNo,
		ClientName:         ledger.NormalizeText(req.ClientName),
		PhoneNumber:        strings.TrimSpace(req.PhoneNumber),
		Description:        ledger.NormalizeText(req.Description),
		PurchaseCategory:   "silage",
		NoOfBales:          req.NoOfBales,
		WeightInKgs:        req.WeightInKgs,
		PricePerKg:         req.PricePerKg,
		Discount:           derived.Discount,
		TotalAmount:        derived.NetTotal,
		AmountPaid:         derived.AmountPaid,
		RemainingAmount:    derived.RemainingAmount,
		DriverName:         ledger.NormalizeText(req.DriverName),
		DriverPhoneNumber:  strings.TrimSpace(req.DriverPhoneNumber),
		VehicleNumber:      ledger.NormalizeText(req.VehicleNumber),
		Location:           ledger.NormalizeText(req.Location),
		TransportationCost: req.TransportationCost,
	}
	if err := s.SaleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(ledger.ClientSale.String()).Inc()
	cache.InvalidateSaleCaches(ctx)
	s.archiveInvoice(sale)
	return sale, nil
}

// archiveInvoice renders the invoice and ships it to the archive bucket in
// the background. Archive failures never fail the sale.
func (s *SaleService) archiveInvoice(sale *models.Sale) {
	if s.Archive == nil || !s.Archive.Enabled() || s.Invoices == nil {
		return
	}
	go func() {
		pdf, filename, err := s.Invoices.Render(sale)
		if err != nil {
			log.Printf("[Sales] invoice render for bill %s failed: %v", sale.BillNo, err)
			return
		}
		if err := s.Archive.Upload(context.Background(), filename, pdf); err != nil {
			log.Printf("[Sales] invoice archive for bill %s failed: %v", sale.BillNo, err)
		}
	}()
}

func (s *SaleService) GetSale(ctx context.Context, id int) (*models.Sale, error) {
	return s.SaleRepo.GetByID(ctx, id)
}

func (s *SaleService) ListSales(ctx context.Context, filter models.ListFilter) ([]*models.Sale, error) {
	return s.SaleRepo.List(ctx, filter)
}

// NextBillNumber previews the next bill number for the sale form.
func (s *SaleService) NextBillNumber(ctx context.Context) (string, error) {
	return s.SaleRepo.NextBillNumber(ctx)
}

func (s *SaleService) AddPayment(ctx context.Context, id int, delta float64) (*models.Sale, error) {
	sale, err := s.SaleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amendment, err := ledger.AmendPayment(sale.AmountPaid, sale.TotalAmount, delta)
	if err != nil {
		return nil, err
	}
	if err := s.SaleRepo.UpdatePayment(ctx, id, amendment.NewPaid, amendment.NewRemaining); err != nil {
		return nil, err
	}
	sale.AmountPaid = amendment.NewPaid
	sale.RemainingAmount = amendment.NewRemaining

	cache.InvalidateSaleCaches(ctx)
	return sale, nil
}

func (s *SaleService) DeleteSale(ctx context.Context, id int) error {
	if err := s.SaleRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateSaleCaches(ctx)
	return nil
}

func (s *SaleService) Summary(ctx context.Context) (*models.SaleSummary, error) {
	if data, ok := cache.GetCached(ctx, cache.SaleSummaryKey); ok {
		summary := &models.SaleSummary{}
		if err := json.Unmarshal(data, summary); err == nil {
			return summary, nil
		}
	}

	summary, err := s.SaleRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(summary); err == nil {
		cache.SetCached(ctx, cache.SaleSummaryKey, data, cache.SummaryTTL)
	}
	return summary, nil
}

// Invoice renders the printable invoice PDF for a sale.
func (s *SaleService) Invoice(ctx context.Context, id int) ([]byte, string, error) {
	sale, err := s.SaleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.Invoices.Render(sale)
}
