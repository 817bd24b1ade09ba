package billing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pgdesk_billing_ticks_total",
		Help: "Number of billing runs started.",
	})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pgdesk_billing_tick_duration_seconds",
		Help:    "Duration of full billing runs.",
		Buckets: prometheus.DefBuckets,
	})

	obligationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pgdesk_billing_obligations_created_total",
		Help: "Number of rent obligations created by billing runs.",
	})

	feeUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pgdesk_billing_fee_updates_total",
		Help: "Number of late fee recomputations written by billing runs.",
	})

	tenantErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pgdesk_billing_tenant_errors_total",
		Help: "Number of tenants skipped by billing runs due to errors.",
	})
)
