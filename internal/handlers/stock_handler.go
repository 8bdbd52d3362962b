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

type StockHandler struct {
	Service *services.StockService
}

func NewStockHandler(s *services.StockService) *StockHandler {
	return &StockHandler{Service: s}
}

func (h *StockHandler) CreateStockIn(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stock, err := h.Service.CreateStockIn(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Stock added successfully.", stock)
}

func (h *StockHandler) GetStockIn(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	stock, err := h.Service.GetStockIn(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stock)
}

func (h *StockHandler) ListStockIn(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListStockIn(r.Context(), models.FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.StockIn{}
	}
	utils.JSON(w, http.StatusOK, entries)
}

func (h *StockHandler) UpdateStockIn(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateStockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stock, err := h.Service.AmendStockIn(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusOK, "Stock updated successfully.", stock)
}

func (h *StockHandler) DeleteStockIn(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteStockIn(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Stock deleted successfully.")
}

func (h *StockHandler) StockSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.StockSummary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []*models.StockSummaryRow{}
	}
	utils.JSON(w, http.StatusOK, rows)
}

func (h *StockHandler) AvailableStock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.AvailableStock(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []*models.AvailableStockRow{}
	}
	utils.JSON(w, http.StatusOK, rows)
}

func (h *StockHandler) CreateStockOut(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.Service.CreateStockOut(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Stock out recorded successfully.", entry)
}

func (h *StockHandler) ListStockOut(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListStockOut(r.Context(), models.FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.StockOut{}
	}
	utils.JSON(w, http.StatusOK, entries)
}

func (h *StockHandler) DeleteStockOut(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteStockOut(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Stock out deleted successfully.")
}
