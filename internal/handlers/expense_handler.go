package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/asiaagro/silage-backend/internal/models"
	"github.com/asiaagro/silage-backend/internal/services"
	"github.com/asiaagro/silage-backend/pkg/utils"
)

type ExpenseHandler struct {
	Service *services.ExpenseService
}

func NewExpenseHandler(s *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{Service: s}
}

func (h *ExpenseHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.Service.CreateCategory(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Category created successfully.", category)
}

func (h *ExpenseHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []*models.ExpenseCategory{}
	}
	utils.JSON(w, http.StatusOK, categories)
}

func (h *ExpenseHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Category deleted successfully.")
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.Service.CreateExpense(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Expense recorded successfully.", expense)
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Service.ListExpenses(r.Context(), models.FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	utils.JSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.Service.AddPayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusOK, "Payment added successfully.", expense)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteExpense(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Expense deleted successfully.")
}

func (h *ExpenseHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
