package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ledger core.
type Metrics struct {
	// Transaction metrics
	TransactionsCreated   *prometheus.CounterVec
	TransactionsUpdated   prometheus.Counter
	TransactionsDeleted   prometheus.Counter
	InstallmentsExpanded  prometheus.Histogram
	TransactionErrors     *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns     prometheus.Counter
	ReconciliationDuration prometheus.Histogram
	BalancesAdjusted       *prometheus.CounterVec

	// Forecast metrics
	ForecastRequests  prometheus.Counter
	ForecastCacheHits prometheus.Counter

	// Collaborator metrics
	GoalMovements          *prometheus.CounterVec
	ShoppingListsCompleted prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixinha_transactions_created_total",
				Help: "Total number of transactions created, by type",
			},
			[]string{"type"},
		),
		TransactionsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixinha_transactions_updated_total",
			Help: "Total number of transactions updated",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixinha_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		InstallmentsExpanded: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caixinha_installments_expanded",
			Help:    "Number of rows generated per installment purchase",
			Buckets: []float64{1, 2, 3, 6, 12, 24, 48, 120},
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixinha_transaction_errors_total",
				Help: "Total number of transaction mutation errors by type",
			},
			[]string{"error_type"},
		),

		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixinha_reconciliation_runs_total",
			Help: "Total number of reconciliation runs",
		}),
		ReconciliationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caixinha_reconciliation_duration_seconds",
			Help:    "Duration of reconciliation runs",
			Buckets: prometheus.DefBuckets,
		}),
		BalancesAdjusted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixinha_balances_adjusted_total",
				Help: "Balances corrected by reconciliation, by target kind",
			},
			[]string{"kind"},
		),

		ForecastRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixinha_forecast_requests_total",
			Help: "Total number of forecast computations requested",
		}),
		ForecastCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixinha_forecast_cache_hits_total",
			Help: "Forecast requests served from cache",
		}),

		GoalMovements: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixinha_goal_movements_total",
				Help: "Total goal movements, by direction",
			},
			[]string{"direction"},
		),
		ShoppingListsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixinha_shopping_lists_completed_total",
			Help: "Total number of shopping lists turned into purchases",
		}),
	}
}
