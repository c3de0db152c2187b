package sqlite

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricNamespace = "wirebiz"

var (
	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: "store",
			Name:      "transactions_total",
			Help:      "Transacciones ejecutadas por modo y resultado (commit, rollback, error).",
		},
		[]string{"mode", "outcome"},
	)

	transactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: "store",
			Name:      "transaction_duration_seconds",
			Help:      "Duración de las transacciones por modo.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
		[]string{"mode"},
	)

	migrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: "store",
			Name:      "migrations_total",
			Help:      "Migraciones de esquema aplicadas.",
		},
	)
)

// Resultados de una transacción.
const (
	outcomeCommit   = "commit"
	outcomeRollback = "rollback"
	outcomeError    = "error"
)
