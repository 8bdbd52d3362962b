package services

import (
	"context"

	"github.com/asiaagro/silage-backend/internal/ledger"
	"github.com/asiaagro/silage-backend/internal/metrics"
	"github.com/asiaagro/silage-backend/internal/models"
	"github.com/asiaagro/silage-backend/internal/repositories"
)

// BunkerService manages bunkers and the three ledgers kept per bunker:
// purchases, sales and expenses.
type BunkerService struct {
	BunkerRepo   *repositories.BunkerRepository
	PurchaseRepo *repositories.BunkerPurchaseRepository
	SaleRepo     *repositories.BunkerSaleRepository
	ExpenseRepo  *repositories.BunkerExpenseRepository
}

func NewBunkerService(
	bunkerRepo *repositories.BunkerRepository,
	purchaseRepo *repositories.BunkerPurchaseRepository,
	saleRepo *repositories.BunkerSaleRepository,
	expenseRepo *repositories.BunkerExpenseRepository,
) *BunkerService {
	return &BunkerService{
		BunkerRepo:   bunkerRepo,
		PurchaseRepo: purchaseRepo,
		SaleRepo:     saleRepo,
		ExpenseRepo:  expenseRepo,
	}
}

func (s *BunkerService) CreateBunker(ctx context.Context, req *models.CreateBunkerRequest) (*models.Bunker, error) {
	name := ledger.NormalizeText(req.Name)
	if name == "" {
		return nil, &ValidationError{Fields: ledger.FieldErrors{"name": "Name is required"}}
	}

	bunker := &models.Bunker{Name: name}
	if err := s.BunkerRepo.Create(ctx, bunker); err != nil {
		return nil, err
	}
	return bunker, nil
}

func (s *BunkerService) GetBunker(ctx context.Context, id int) (*models.Bunker, error) {
	return s.BunkerRepo.GetByID(ctx, id)
}

func (s *BunkerService) ListBunkers(ctx context.Context) ([]*models.Bunker, error) {
	return s.BunkerRepo.List(ctx)
}

func (s *BunkerService) DeleteBunker(ctx context.Context, id int) error {
	return s.BunkerRepo.Delete(ctx, id)
}

func (s *BunkerService) BunkerTotals(ctx context.Context, id int) (*models.BunkerTotals, error) {
	if _, err := s.BunkerRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.BunkerRepo.Totals(ctx, id)
}

func (s *BunkerService) CreatePurchase(ctx context.Context, bunkerID int, req *models.CreateBunkerPurchaseRequest) (*models.BunkerPurchase, error) {
	if _, err := s.BunkerRepo.GetByID(ctx, bunkerID); err != nil {
		return nil, err
	}

	derived, errs := ledger.Recompute(ledger.BunkerPurchase, ledger.Fields{
		"quantity":   num(req.Quantity),
		"price":      num(req.Price),
		"discount":   num(req.Discount),
		"amountPaid": num(req.AmountPaid),
	})
	if !errs.OK() {
		metrics.ValidationRejections.WithLabelValues(ledger.BunkerPurchase.String()).Inc()
		return nil, &ValidationError{Fields: errs}
	}

	purchase := &models.BunkerPurchase{
		BunkerID:        bunkerID,
		Quantity:        req.Quantity,
		Price:           req.Price,
		Discount:        derived.Discount,
		TotalAmount:     derived.NetTotal,
		AmountPaid:      derived.AmountPaid,
		RemainingAmount: derived.RemainingAmount,
	}
	if err := s.PurchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(ledger.BunkerPurchase.String()).Inc()
	return purchase, nil
}

func (s *BunkerService) ListPurchases(ctx context.Context, bunkerID int, filter models.ListFilter) ([]*models.BunkerPurchase, error) {
	return s.PurchaseRepo.ListByBunker(ctx, bunkerID, filter)
}

func (s *BunkerService) AddPurchasePayment(ctx context.Context, id int, delta float64) (*models.BunkerPurchase, error) {
	purchase, err := s.PurchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amendment, err := ledger.AmendPayment(purchase.AmountPaid, purchase.TotalAmount, delta)
	if err != nil {
		return nil, err
	}
	if err := s.PurchaseRepo.UpdatePayment(ctx, id, amendment.NewPaid, amendment.NewRemaining); err != nil {
		return nil, err
	}
	purchase.AmountPaid = amendment.NewPaid
	purchase.RemainingAmount = amendment.NewRemaining
	return purchase, nil
}

func (s *BunkerService) DeletePurchase(ctx context.Context, id int) error {
	return s.PurchaseRepo.Delete(ctx, id)
}

func (s *BunkerService) CreateSale(ctx context.Context, bunkerID int, req *models.CreateBunkerSaleRequest) (*models.BunkerSale, error) {
	if _, err := s.BunkerRepo.GetByID(ctx, bunkerID); err != nil {
		return nil, err
	}

	derived, errs := ledger.Recompute(ledger.BunkerSale, ledger.Fields{
		"customerName": req.CustomerName,
		"kgsSold":      num(req.KgsSold),
		"price":        num(req.Price),
		"discount":     num(req.Discount),
		"amountPaid":   num(req.AmountPaid),
	})
	if !errs.OK() {
		metrics.ValidationRejections.WithLabelValues(ledger.BunkerSale.String()).Inc()
		return nil, &ValidationError{Fields: errs}
	}

	sale := &models.BunkerSale{
		BunkerID:        bunkerID,
		CustomerName:    ledger.NormalizeText(req.CustomerName),
		KgsSold:         req.KgsSold,
		Price:           req.Price,
		Discount:        derived.Discount,
		TotalAmount:     derived.NetTotal,
		AmountPaid:      derived.AmountPaid,
		RemainingAmount: derived.RemainingAmount,
	}
	if err := s.SaleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(ledger.BunkerSale.String()).Inc()
	return sale, nil
}

func (s *BunkerService) ListSales(ctx context.Context, bunkerID int, filter models.ListFilter) ([]*models.BunkerSale, error) {
	return s.SaleRepo.ListByBunker(ctx, bunkerID, filter)
}

func (s *BunkerService) AddSalePayment(ctx context.Context, id int, delta float64) (*models.BunkerSale, error) {
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
	return sale, nil
}

func (s *BunkerService) DeleteSale(ctx context.Context, id int) error {
	return s.SaleRepo.Delete(ctx, id)
}

func (s *BunkerService) CreateExpense(ctx context.Context, bunkerID int, req *models.CreateBunkerExpenseRequest) (*models.BunkerExpense, error) {
	if _, err := s.BunkerRepo.GetByID(ctx, bunkerID); err != nil {
		return nil, err
	}

	derived, errs := ledger.Recompute(ledger.BunkerExpense, ledger.Fields{
		"name":       req.Name,
		"amount":     num(req.Amount),
		"amountPaid": num(req.AmountPaid),
	})
	if !errs.OK() {
		metrics.ValidationRejections.WithLabelValues(ledger.BunkerExpense.String()).Inc()
		return nil, &ValidationError{Fields: errs}
	}

	expense := &models.BunkerExpense{
		BunkerID:        bunkerID,
		Name:            ledger.NormalizeText(req.Name),
		Amount:          derived.NetTotal,
		AmountPaid:      derived.AmountPaid,
		RemainingAmount: derived.RemainingAmount,
	}
	if err := s.ExpenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(ledger.BunkerExpense.String()).Inc()
	return expense, nil
}

func (s *BunkerService) ListExpenses(ctx context.Context, bunkerID int, filter models.ListFilter) ([]*models.BunkerExpense, error) {
	return s.ExpenseRepo.ListByBunker(ctx, bunkerID, filter)
}

func (s *BunkerService) AddExpensePayment(ctx context.Context, id int, delta float64) (*models.BunkerExpense, error) {
	expense, err := s.ExpenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amendment, err := ledger.AmendPayment(expense.AmountPaid, expense.Amount, delta)
	if err != nil {
		return nil, err
	}
	if err := s.ExpenseRepo.UpdatePayment(ctx, id, amendment.NewPaid, amendment.NewRemaining); err != nil {
		return nil, err
	}
	expense.AmountPaid = amendment.NewPaid
	expense.RemainingAmount = amendment.NewRemaining
	return expense, nil
}

func (s *BunkerService) DeleteExpense(ctx context.Context, id int) error {
	return s.ExpenseRepo.Delete(ctx, id)
}
