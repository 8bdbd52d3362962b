package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/asiaagro/silage-backend/internal/cache"
	"github.com/asiaagro/silage-backend/internal/ledger"
	"github.com/asiaagro/silage-backend/internal/metrics"
	"github.com/asiaagro/silage-backend/internal/models"
	"github.com/asiaagro/silage-backend/internal/repositories"
)

type StockService struct {
	StockRepo    *repositories.StockRepository
	StockOutRepo *repositories.StockOutRepository
}

func NewStockService(stockRepo *repositories.StockRepository, stockOutRepo *repositories.StockOutRepository) *StockService {
	return &StockService{StockRepo: stockRepo, StockOutRepo: stockOutRepo}
}

func (s *StockService) CreateStockIn(ctx context.Context, req *models.CreateStockInRequest) (*models.StockIn, error) {
	derived, errs := ledger.Recompute(ledger.StockIn, ledger.Fields{
		"clientName":    req.ClientName,
		"category":      req.Category,
		"scheduledDate": req.ScheduledDate,
		"weightPerKg":   num(req.WeightPerKg),
		"pricePerKg":    num(req.PricePerKg),
		"discount":      num(req.Discount),
		"amountPaid":    num(req.AmountPaid),
	})
	if !errs.OK() {
		metrics.ValidationRejections.WithLabelValues(ledger.StockIn.String()).Inc()
		return nil, &ValidationError{Fields: errs}
	}

	stock := &models.StockIn{
		ClientName:      ledger.NormalizeText(req.ClientName),
		Description:     ledger.NormalizeText(req.Description),
		Category:        req.Category,
		WeightPerKg:     req.WeightPerKg,
		PricePerKg:      req.PricePerKg,
		Discount:        derived.Discount,
		GrossTotal:      derived.GrossTotal,
		NetTotal:        derived.NetTotal,
		AmountPaid:      derived.AmountPaid,
		RemainingAmount: derived.RemainingAmount,
		DriverName:      ledger.NormalizeText(req.DriverName),
		VehicleNumber:   ledger.NormalizeText(req.VehicleNumber),
		ScheduledDate:   req.ScheduledDate,
	}
	if err := s.StockRepo.Create(ctx, stock); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(ledger.StockIn.String()).Inc()
	cache.InvalidateStockCaches(ctx)
	return stock, nil
}

func (s *StockService) GetStockIn(ctx context.Context, id int) (*models.StockIn, error) {
	return s.StockRepo.GetByID(ctx, id)
}

func (s *StockService) ListStockIn(ctx context.Context, filter models.ListFilter) ([]*models.StockIn, error) {
	return s.StockRepo.List(ctx, filter)
}

// AmendStockIn applies the sparse update the edit form sends: any changed
// text fields plus an optional incremental payment. Unchanged text fields
// are dropped and a payment that changes nothing rejects the whole request.
func (s *StockService) AmendStockIn(ctx context.Context, id int, req *models.UpdateStockInRequest) (*models.StockIn, error) {
	stock, err := s.StockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.ClientName != nil {
		if v, changed := ledger.TextChanged(stock.ClientName, *req.ClientName); changed {
			fields["client_name"] = v
		}
	}
	if req.Description != nil {
		if v, changed := ledger.TextChanged(stock.Description, *req.Description); changed {
			fields["description"] = v
		}
	}

	if req.AddPayment != nil {
		amendment, err := ledger.AmendPayment(stock.AmountPaid, stock.NetTotal, *req.AddPayment)
		if err != nil {
			return nil, err
		}
		fields["amount_paid"] = amendment.NewPaid
		fields["remaining_amount"] = amendment.NewRemaining
	}

	if len(fields) == 0 {
		return nil, ledger.ErrNoValidChange
	}
	if err := s.StockRepo.ApplyAmendment(ctx, id, fields); err != nil {
		return nil, err
	}

	cache.InvalidateStockCaches(ctx)
	return s.StockRepo.GetByID(ctx, id)
}

func (s *StockService) DeleteStockIn(ctx context.Context, id int) error {
	if err := s.StockRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateStockCaches(ctx)
	return nil
}

// StockSummary returns the per-category buying totals, served from Redis
// when a fresh copy exists.
func (s *StockService) StockSummary(ctx context.Context) ([]*models.StockSummaryRow, error) {
	if data, ok := cache.GetCached(ctx, cache.StockSummaryKey); ok {
		var rows []*models.StockSummaryRow
		if err := json.Unmarshal(data, &rows); err == nil {
			return rows, nil
		}
	}

	rows, err := s.StockRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(rows); err == nil {
		cache.SetCached(ctx, cache.StockSummaryKey, data, cache.SummaryTTL)
	}
	return rows, nil
}

func (s *StockService) AvailableStock(ctx context.Context) ([]*models.AvailableStockRow, error) {
	if data, ok := cache.GetCached(ctx, cache.AvailableStockKey); ok {
		var rows []*models.AvailableStockRow
		if err := json.Unmarshal(data, &rows); err == nil {
			return rows, nil
		}
	}

	rows, err := s.StockRepo.AvailableStock(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(rows); err == nil {
		cache.SetCached(ctx, cache.AvailableStockKey, data, cache.SummaryTTL)
	}
	return rows, nil
}

func (s *StockService) CreateStockOut(ctx context.Context, req *models.CreateStockOutRequest) (*models.StockOut, error) {
	_, errs := ledger.Recompute(ledger.StockOut, ledger.Fields{
		"personName": req.PersonName,
		"category":   req.Category,
		"date":       req.Date,
		"quantity":   stockOutQuantity(req.Quantity),
	})
	if !errs.OK() {
		metrics.ValidationRejections.WithLabelValues(ledger.StockOut.String()).Inc()
		return nil, &ValidationError{Fields: errs}
	}

	entry := &models.StockOut{
		PersonName: ledger.NormalizeText(req.PersonName),
		Category:   req.Category,
		Quantity:   req.Quantity,
		Date:       req.Date,
	}
	if err := s.StockOutRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(ledger.StockOut.String()).Inc()
	cache.InvalidateStockCaches(ctx)
	return entry, nil
}

func (s *StockService) ListStockOut(ctx context.Context, filter models.ListFilter) ([]*models.StockOut, error) {
	return s.StockOutRepo.List(ctx, filter)
}

func (s *StockService) DeleteStockOut(ctx context.Context, id int) error {
	if err := s.StockOutRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateStockCaches(ctx)
	return nil
}

// stockOutQuantity keeps an unset quantity distinguishable from zero: the
// form leaves the field empty rather than sending 0.
func stockOutQuantity(q float64) string {
	if q == 0 {
		return ""
	}
	return strconv.FormatFloat(q, 'f', -1, 64)
}
