package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Ledger operations
	TransfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transfers_total",
			Help: "Total transfer attempts by outcome",
		},
		[]string{"outcome"}, // success|failed
	)
	AccountsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total accounts created",
		},
	)

	// Lock manager
	LocksTracked = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_locks_tracked",
			Help: "Distinct account ids with a lazily created lock",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

// Init registers all collectors. Call once at startup.
func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TransfersTotal)
	prometheus.MustRegister(AccountsCreated)
	prometheus.MustRegister(LocksTracked)
}
