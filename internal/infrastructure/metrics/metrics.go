package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/usecase"
)

const namespace = "accountledger"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Transactions        *prometheus.CounterVec
	TransactionDuration *prometheus.HistogramVec
	TransactionAmount   *prometheus.HistogramVec
	Statements          *prometheus.CounterVec
	AccountBalance      *prometheus.GaugeVec

	// Reconciliation metrics
	Reconciliations  *prometheus.CounterVec
	DriftingAccounts prometheus.Gauge

	// API metrics
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Total transactions by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		TransactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_duration_seconds",
				Help:      "Duration of transaction submissions",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"kind"},
		),
		TransactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_amount",
				Help:      "Accepted transaction amounts in minor units",
				Buckets:   []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		Statements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "statements_total",
				Help:      "Total statement reads by outcome",
			},
			[]string{"outcome"},
		),
		AccountBalance: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "account_balance",
				Help:      "Last observed account balance in minor units",
			},
			[]string{"account_id"},
		),

		Reconciliations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconciliations_total",
				Help:      "Reconciliation runs by outcome",
			},
			[]string{"outcome"},
		),
		DriftingAccounts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "drifting_accounts",
			Help:      "Accounts whose balance disagreed with their transactions on the last reconciliation",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter",
		}),
	}
}

// ObserveTransaction implements usecase.MetricsRecorder.
func (m *Metrics) ObserveTransaction(kind domain.TransactionKind, outcome string, amount domain.Money, duration time.Duration) {
	label := kindLabel(kind)

	m.Transactions.WithLabelValues(label, outcome).Inc()
	m.TransactionDuration.WithLabelValues(label).Observe(duration.Seconds())

	if outcome == usecase.OutcomeAccepted {
		m.TransactionAmount.WithLabelValues(label).Observe(float64(amount))
	}
}

// ObserveStatement implements usecase.MetricsRecorder.
func (m *Metrics) ObserveStatement(outcome string) {
	m.Statements.WithLabelValues(outcome).Inc()
}

// SetBalance implements usecase.MetricsRecorder.
func (m *Metrics) SetBalance(accountID string, balance domain.Money) {
	m.AccountBalance.WithLabelValues(accountID).Set(float64(balance))
}

// ObserveReconciliation implements usecase.ReconciliationRecorder.
func (m *Metrics) ObserveReconciliation(outcome string, drifting int) {
	m.Reconciliations.WithLabelValues(outcome).Inc()
	if outcome != usecase.ReconcileFailed {
		m.DriftingAccounts.Set(float64(drifting))
	}
}

// kindLabel keeps label cardinality bounded when a request carries garbage.
func kindLabel(kind domain.TransactionKind) string {
	switch kind {
	case domain.KindCredit:
		return "credit"
	case domain.KindDebit:
		return "debit"
	default:
		return "unknown"
	}
}
