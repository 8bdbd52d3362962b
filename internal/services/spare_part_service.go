package services

import (
	"context"
	"strconv"

	"github.com/asiaagro/silage-backend/internal/ledger"
	"github.com/asiaagro/silage-backend/internal/metrics"
	"github.com/asiaagro/silage-backend/internal/models"
	"github.com/asiaagro/silage-backend/internal/repositories"
)

type SparePartService struct {
	PartRepo *repositories.SparePartRepository
}

func NewSparePartService(partRepo *repositories.SparePartRepository) *SparePartService {
	return &SparePartService{PartRepo: partRepo}
}

func (s *SparePartService) CreatePart(ctx context.Context, req *models.CreateSparePartRequest) (*models.SparePart, error) {
	_, errs := ledger.Recompute(ledger.SparePart, ledger.Fields{
		"name":     req.Name,
		"quantity": partQuantity(req.Quantity),
	})
	if !errs.OK() {
		metrics.ValidationRejections.WithLabelValues(ledger.SparePart.String()).Inc()
		return nil, &ValidationError{Fields: errs}
	}

	part := &models.SparePart{
		Name:     ledger.NormalizeText(req.Name),
		Quantity: req.Quantity,
	}
	if err := s.PartRepo.Create(ctx, part); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(ledger.SparePart.String()).Inc()
	return part, nil
}

func (s *SparePartService) ListParts(ctx context.Context, filter models.ListFilter) ([]*models.SparePart, error) {
	return s.PartRepo.List(ctx, filter)
}

func (s *SparePartService) UpdateQuantity(ctx context.Context, id int, req *models.UpdateSparePartRequest) (*models.SparePart, error) {
	if req.Quantity <= 0 {
		return nil, &ValidationError{Fields: ledger.FieldErrors{
			"quantity": "Quantity must be greater than 0",
		}}
	}
	if err := s.PartRepo.UpdateQuantity(ctx, id, req.Quantity); err != nil {
		return nil, err
	}
	return s.PartRepo.GetByID(ctx, id)
}

func (s *SparePartService) DeletePart(ctx context.Context, id int) error {
	return s.PartRepo.Delete(ctx, id)
}

func partQuantity(q float64) string {
	if q == 0 {
		return ""
	}
	return strconv.FormatFloat(q, 'f', -1, 64)
}
