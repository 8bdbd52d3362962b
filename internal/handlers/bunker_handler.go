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

type BunkerHandler struct {
	Service *services.BunkerService
}

func NewBunkerHandler(s *services.BunkerService) *BunkerHandler {
	return &BunkerHandler{Service: s}
}

func (h *BunkerHandler) CreateBunker(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBunkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bunker, err := h.Service.CreateBunker(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Bunker created successfully.", bunker)
}

func (h *BunkerHandler) ListBunkers(w http.ResponseWriter, r *http.Request) {
	bunkers, err := h.Service.ListBunkers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bunkers == nil {
		bunkers = []*models.Bunker{}
	}
	utils.JSON(w, http.StatusOK, bunkers)
}

func (h *BunkerHandler) GetBunker(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	bunker, err := h.Service.GetBunker(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bunker)
}

func (h *BunkerHandler) DeleteBunker(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteBunker(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Bunker deleted successfully.")
}

func (h *BunkerHandler) BunkerTotals(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	totals, err := h.Service.BunkerTotals(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, totals)
}

func (h *BunkerHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	bunkerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateBunkerPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purchase, err := h.Service.CreatePurchase(r.Context(), bunkerID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Purchase recorded successfully.", purchase)
}

func (h *BunkerHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	bunkerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	purchases, err := h.Service.ListPurchases(r.Context(), bunkerID, models.FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if purchases == nil {
		purchases = []*models.BunkerPurchase{}
	}
	utils.JSON(w, http.StatusOK, purchases)
}

func (h *BunkerHandler) AddPurchasePayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["purchaseId"])

	var req models.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purchase, err := h.Service.AddPurchasePayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusOK, "Payment added successfully.", purchase)
}

func (h *BunkerHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["purchaseId"])

	if err := h.Service.DeletePurchase(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Purchase deleted successfully.")
}

func (h *BunkerHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	bunkerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateBunkerSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.Service.CreateSale(r.Context(), bunkerID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Sale recorded successfully.", sale)
}

func (h *BunkerHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	bunkerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	sales, err := h.Service.ListSales(r.Context(), bunkerID, models.FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sales == nil {
		sales = []*models.BunkerSale{}
	}
	utils.JSON(w, http.StatusOK, sales)
}

func (h *BunkerHandler) AddSalePayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["saleId"])

	var req models.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.Service.AddSalePayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusOK, "Payment added successfully.", sale)
}

func (h *BunkerHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["saleId"])

	if err := h.Service.DeleteSale(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Sale deleted successfully.")
}

func (h *BunkerHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	bunkerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateBunkerExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.Service.CreateExpense(r.Context(), bunkerID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Expense recorded successfully.", expense)
}

func (h *BunkerHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	bunkerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	expenses, err := h.Service.ListExpenses(r.Context(), bunkerID, models.FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if expenses == nil {
		expenses = []*models.BunkerExpense{}
	}
	utils.JSON(w, http.StatusOK, expenses)
}

func (h *BunkerHandler) AddExpensePayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["expenseId"])

	var req models.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.Service.AddExpensePayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusOK, "Payment added successfully.", expense)
}

func (h *BunkerHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["expenseId"])

	if err := h.Service.DeleteExpense(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Expense deleted successfully.")
}
