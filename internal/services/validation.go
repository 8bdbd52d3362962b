package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/asiaagro/silage-backend/internal/ledger"
)

// ValidationError carries the field-keyed messages produced by the ledger
// engine. Handlers translate it into a 422 response with the full map.
type ValidationError struct {
	Fields ledger.FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// num renders a numeric request value into the string form the ledger
// engine parses. Zero renders as "0", not empty, so it reads as a set field.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
