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

type SparePartHandler struct {
	Service *services.SparePartService
}

func NewSparePartHandler(s *services.SparePartService) *SparePartHandler {
	return &SparePartHandler{Service: s}
}

func (h *SparePartHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSparePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	part, err := h.Service.CreatePart(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusCreated, "Spare part added successfully.", part)
}

func (h *SparePartHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.Service.ListParts(r.Context(), models.FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if parts == nil {
		parts = []*models.SparePart{}
	}
	utils.JSON(w, http.StatusOK, parts)
}

func (h *SparePartHandler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateSparePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	part, err := h.Service.UpdateQuantity(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.MessageWithData(w, http.StatusOK, "Spare part updated successfully.", part)
}

func (h *SparePartHandler) DeletePart(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeletePart(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Spare part deleted successfully.")
}
