package handlers

import (
	"net/http"

	"github.com/asiaagro/silage-backend/internal/services"
	"github.com/asiaagro/silage-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.SummaryService
}

func NewDashboardHandler(s *services.SummaryService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// Overview serves all four dashboard panels in one response.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.Overview(r.Context()))
}
