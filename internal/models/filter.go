package models

import (
	"net/url"
	"strconv"
)

// Payment status filter values accepted by every list endpoint.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// ListFilter is the common filter shape every list endpoint accepts:
// keyword search, a single PKT date, a row limit and an optional payment
// status (paid = remaining amount is zero).
type ListFilter struct {
	Keyword       string
	Date          string
	Limit         int
	PaymentStatus string
}

const defaultListLimit = 10

// FilterFromQuery parses the common filter from request query parameters.
// Unknown payment statuses are ignored rather than rejected, matching how
// the forms send "all" by omitting the parameter.
func FilterFromQuery(q url.Values) ListFilter {
	f := ListFilter{
		Keyword: q.Get("keyword"),
		Date:    q.Get("date"),
		Limit:   defaultListLimit,
	}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}

	switch q.Get("paymentStatus") {
	case PaymentStatusPaid:
		f.PaymentStatus = PaymentStatusPaid
	case PaymentStatusUnpaid:
		f.PaymentStatus = PaymentStatusUnpaid
	}

	return f
}
