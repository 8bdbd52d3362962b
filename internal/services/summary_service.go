package services

import (
	"context"
	"log"
	"sync"

	"github.com/asiaagro/silage-backend/internal/models"
)

// Overview is the combined dashboard payload. Panels that failed to load
// are null; the page renders the rest.
type Overview struct {
	AvailableStock []*models.AvailableStockRow `json:"availableStock"`
	StockSummary   []*models.StockSummaryRow   `json:"stockSummary"`
	SaleSummary    *models.SaleSummary         `json:"saleSummary"`
	ExpenseSummary *models.ExpenseSummary      `json:"expenseSummary"`
}

// SummaryService joins the four dashboard panels into one response. The
// panels are independent so they are fetched concurrently and a failing
// panel never takes down the others.
type SummaryService struct {
	Stock    *StockService
	Sales    *SaleService
	Expenses *ExpenseService
}

func NewSummaryService(stock *StockService, sales *SaleService, expenses *ExpenseService) *SummaryService {
	return &SummaryService{Stock: stock, Sales: sales, Expenses: expenses}
}

func (s *SummaryService) Overview(ctx context.Context) *Overview {
	overview := &Overview{}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		rows, err := s.Stock.AvailableStock(ctx)
		if err != nil {
			log.Printf("[Dashboard] available stock failed: %v", err)
			return
		}
		overview.AvailableStock = rows
	}()

	go func() {
		defer wg.Done()
		rows, err := s.Stock.StockSummary(ctx)
		if err != nil {
			log.Printf("[Dashboard] stock summary failed: %v", err)
			return
		}
		overview.StockSummary = rows
	}()

	go func() {
		defer wg.Done()
		summary, err := s.Sales.Summary(ctx)
		if err != nil {
			log.Printf("[Dashboard] sale summary failed: %v", err)
			return
		}
		overview.SaleSummary = summary
	}()

	go func() {
		defer wg.Done()
		summary, err := s.Expenses.Summary(ctx)
		if err != nil {
			log.Printf("[Dashboard] expense summary failed: %v", err)
			return
		}
		overview.ExpenseSummary = summary
	}()

	wg.Wait()
	return overview
}
