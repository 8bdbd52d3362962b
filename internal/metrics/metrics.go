package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "silage_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "silage_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransactionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "silage_transactions_created_total",
			Help: "Ledger records created by transaction kind",
		},
		[]string{"kind"},
	)

	ValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "silage_validation_rejections_total",
			Help: "Write requests rejected by the validation engine, by kind",
		},
		[]string{"kind"},
	)

	InvoicesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "silage_invoices_generated_total",
			Help: "Sale invoice PDFs generated",
		},
	)
)
