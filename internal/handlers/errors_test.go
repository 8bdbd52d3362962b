package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asiaagro/silage-backend/internal/ledger"
	"github.com/asiaagro/silage-backend/internal/repositories"
	"github.com/asiaagro/silage-backend/internal/services"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWriteServiceError(t *testing.T) {
	t.Run("validation error carries the field map", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("create stock in: %w", &services.ValidationError{
			Fields: ledger.FieldErrors{"clientName": "Client name is required"},
		})

		writeServiceError(rec, err)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeEnvelope(t, rec)
		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Client name is required", errs["clientName"])
	})

	t.Run("overpayment maps to 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		_, err := ledger.AmendPayment(80, 100, 30)
		require.Error(t, err)

		writeServiceError(rec, fmt.Errorf("add payment: %w", err))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no valid change maps to 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeServiceError(rec, fmt.Errorf("amend: %w", ledger.ErrNoValidChange))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, "No valid changes to apply.", body["message"])
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeServiceError(rec, fmt.Errorf("get sale: %w", repositories.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("storage failure never leaks the wrapped cause", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cause := errors.New(`connect to "postgres://admin:hunter2@db:5432": refused`)
		writeServiceError(rec, fmt.Errorf("create sale: %w", cause))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		raw := rec.Body.String()
		assert.NotContains(t, raw, "hunter2")
		assert.NotContains(t, raw, "postgres")

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(raw), &body))
		assert.Equal(t, "Something went wrong. Please try again.", body["message"])
	})
}
