package models

import "time"

type ExpenseCategory struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateExpenseCategoryRequest struct {
	Name string `json:"name"`
}

// Expense is a general business expense recorded against a category.
type Expense struct {
	ID              int       `json:"id"`
	CategoryID      int       `json:"expence"`
	CategoryName    string    `json:"categoryName,omitempty"`
	Description     string    `json:"description"`
	Amount          float64   `json:"amount"`
	Discount        float64   `json:"discount"`
	AmountPaid      float64   `json:"amountPaid"`
	RemainingAmount float64   `json:"remainingAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateExpenseRequest struct {
	CategoryID  int     `json:"expence"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Discount    float64 `json:"discount"`
	AmountPaid  float64 `json:"amountPaid"`
}

// ExpenseSummary feeds the dashboard expenses panel.
type ExpenseSummary struct {
	TotalAmountSpent     float64 `json:"totalAmountSpent"`
	TotalDiscount        float64 `json:"totalDiscount"`
	TotalAmountPaid      float64 `json:"totalAmountPaid"`
	TotalRemainingAmount float64 `json:"totalRemainingAmount"`
}
