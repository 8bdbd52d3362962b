package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/asiaagro/silage-backend/internal/models"
	"github.com/asiaagro/silage-backend/internal/services"
	"github.com/asiaagro/silage-backend/pkg/utils"
)

type SaleHandler struct {
	Service *services.SaleService
}

func NewSaleHandler(s *services.SaleService) *SaleHandler {
	return &SaleHandler{Service: s}
}

func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.Service.CreateSale(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Sale recorded successfully.", sale)
}

func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	sale, err := h.Service.GetSale(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Service.ListSales(r.Context(), models.FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sales == nil {
		sales = []*models.Sale{}
	}
	utils.JSON(w, http.StatusOK, sales)
}

// NextBillNumber previews the bill number the next sale will receive.
func (h *SaleHandler) NextBillNumber(w http.ResponseWriter, r *http.Request) {
	billNo, err := h.Service.NextBillNumber(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"billNo": billNo})
}

func (h *SaleHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.Service.AddPayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusOK, "Payment added successfully.", sale)
}

func (h *SaleHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteSale(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Sale deleted successfully.")
}

func (h *SaleHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// Invoice streams the sale's bill as a PDF download.
func (h *SaleHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	pdf, filename, err := h.Service.Invoice(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Write(pdf)
}
