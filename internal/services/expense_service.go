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

type ExpenseService struct {
	ExpenseRepo *repositories.ExpenseRepository
}

func NewExpenseService(expenseRepo *repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{ExpenseRepo: expenseRepo}
}

func (s *ExpenseService) CreateCategory(ctx context.Context, req *models.CreateExpenseCategoryRequest) (*models.ExpenseCategory, error) {
	name := ledger.NormalizeText(req.Name)
	if name == "" {
		return nil, &ValidationError{Fields: ledger.FieldErrors{"name": "Name is required"}}
	}

	category := &models.ExpenseCategory{Name: name}
	if err := s.ExpenseRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ExpenseService) ListCategories(ctx context.Context) ([]*models.ExpenseCategory, error) {
	return s.ExpenseRepo.ListCategories(ctx)
}

func (s *ExpenseService) DeleteCategory(ctx context.Context, id int) error {
	return s.ExpenseRepo.DeleteCategory(ctx, id)
}

func (s *ExpenseService) CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error) {
	category := ""
	if req.CategoryID > 0 {
		category = strconv.Itoa(req.CategoryID)
	}
	derived, errs := ledger.Recompute(ledger.Expense, ledger.Fields{
		"description":     req.Description,
		"expenseCategory": category,
		"amount":          num(req.Amount),
		"discount":        num(req.Discount),
		"amountPaid":      num(req.AmountPaid),
	})
	if !errs.OK() {
		metrics.ValidationRejections.WithLabelValues(ledger.Expense.String()).Inc()
		return nil, &ValidationError{Fields: errs}
	}

	expense := &models.Expense{
		CategoryID:      req.CategoryID,
		Description:     ledger.NormalizeText(req.Description),
		Amount:          req.Amount,
		Discount:        derived.Discount,
		AmountPaid:      derived.AmountPaid,
		RemainingAmount: derived.RemainingAmount,
	}
	if err := s.ExpenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(ledger.Expense.String()).Inc()
	cache.InvalidateExpenseCaches(ctx)
	return s.ExpenseRepo.GetByID(ctx, expense.ID)
}

func (s *ExpenseService) ListExpenses(ctx context.Context, filter models.ListFilter) ([]*models.Expense, error) {
	return s.ExpenseRepo.List(ctx, filter)
}

func (s *ExpenseService) AddPayment(ctx context.Context, id int, delta float64) (*models.Expense, error) {
	expense, err := s.ExpenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	netTotal := expense.Amount - expense.Discount
	amendment, err := ledger.AmendPayment(expense.AmountPaid, netTotal, delta)
	if err != nil {
		return nil, err
	}
	if err := s.ExpenseRepo.UpdatePayment(ctx, id, amendment.NewPaid, amendment.NewRemaining); err != nil {
		return nil, err
	}
	expense.AmountPaid = amendment.NewPaid
	expense.RemainingAmount = amendment.NewRemaining

	cache.InvalidateExpenseCaches(ctx)
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id int) error {
	if err := s.ExpenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateExpenseCaches(ctx)
	return nil
}

func (s *ExpenseService) Summary(ctx context.Context) (*models.ExpenseSummary, error) {
	if data, ok := cache.GetCached(ctx, cache.ExpenseSummaryKey); ok {
		summary := &models.ExpenseSummary{}
		if err := json.Unmarshal(data, summary); err == nil {
			return summary, nil
		}
	}

	summary, err := s.ExpenseRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(summary); err == nil {
		cache.SetCached(ctx, cache.ExpenseSummaryKey, data, cache.SummaryTTL)
	}
	return summary, nil
}
