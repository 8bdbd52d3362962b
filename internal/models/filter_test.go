package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  ListFilter
	}{
		{"defaults", "", ListFilter{Limit: 10}},
		{"all params", "keyword=ali&date=2025-11-02&limit=50&paymentStatus=unpaid",
			ListFilter{Keyword: "ali", Date: "2025-11-02", Limit: 50, PaymentStatus: "unpaid"}},
		{"paid status", "paymentStatus=paid", ListFilter{Limit: 10, PaymentStatus: "paid"}},
		{"unknown status ignored", "paymentStatus=all", ListFilter{Limit: 10}},
		{"bad limit falls back", "limit=abc", ListFilter{Limit: 10}},
		{"zero limit falls back", "limit=0", ListFilter{Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			assert.Equal(t, tt.want, FilterFromQuery(q))
		})
	}
}
