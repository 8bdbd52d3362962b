package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/asiaagro/silage-backend/internal/ledger"
	"github.com/asiaagro/silage-backend/internal/repositories"
	"github.com/asiaagro/silage-backend/internal/services"
	"github.com/asiaagro/silage-backend/pkg/utils"
)

// writeServiceError maps service-layer failures onto HTTP responses.
// Validation failures carry the full field error map so the forms can
// highlight each input.
func writeServiceError(w http.ResponseWriter, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		utils.ValidationError(w, validation.Fields)
		return
	}

	var overpayment *ledger.OverpaymentError
	if errors.As(err, &overpayment) {
		utils.Error(w, http.StatusBadRequest, overpayment.Error())
		return
	}
	if errors.Is(err, ledger.ErrNoValidChange) {
		utils.Error(w, http.StatusBadRequest, "No valid changes to apply.")
		return
	}
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Record not found.")
		return
	}

	// Anything else is a storage or infrastructure failure. The wrapped
	// cause can carry SQL details, so the client only gets a generic body.
	log.Printf("[Handler] internal error: %v", err)
	utils.Error(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
