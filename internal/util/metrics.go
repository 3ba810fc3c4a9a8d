package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of catalog products created",
	})

	ProductsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "Total number of catalog products deleted",
	})

	ExhibitionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exhibitions_created_total",
		Help: "Total number of exhibitions created",
	})

	ProductListsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_lists_submitted_total",
		Help: "Total number of supplier product lists submitted",
	})

	ApprovalDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "approval_decisions_total",
		Help: "Total number of approval workflow decisions",
	}, []string{"subject", "decision"})

	ApprovalRejectedInputTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "approval_rejected_input_total",
		Help: "Total number of approval requests rejected for an invalid status value",
	})

	LowStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_low_stock_products",
		Help: "Number of products at or below their threshold value",
	})

	OutOfStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_out_of_stock_products",
		Help: "Number of products with zero quantity",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
