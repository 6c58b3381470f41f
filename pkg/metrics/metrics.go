package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hydration_challenge"

var (
	// IntakeLoggedTotal counts accepted intake logs per participant.
	IntakeLoggedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intake_logged_total",
			Help:      "Total number of intake logs accepted",
		},
		[]string{"participant"},
	)

	// IntakeAmountTotal sums logged intake per participant.
	IntakeAmountTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intake_amount_total",
			Help:      "Sum of all logged intake amounts",
		},
		[]string{"participant"},
	)

	// GoalReachedTotal counts daily goal threshold crossings.
	GoalReachedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goal_reached_total",
			Help:      "Total number of times a participant crossed the daily goal",
		},
		[]string{"participant"},
	)

	// RolloversTotal counts archived days by outcome.
	RolloversTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollovers_total",
			Help:      "Total number of archived days",
		},
		[]string{"outcome"},
	)

	// OperationErrorsTotal counts rejected or failed session operations.
	OperationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Total number of failed session operations",
		},
		[]string{"operation"},
	)

	// StoreWriteDuration observes how long persisting the state takes.
	StoreWriteDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_write_duration_seconds",
			Help:      "Duration of state document writes",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// HistoryLength reports the number of archived days.
	HistoryLength = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_length",
			Help:      "Number of archived days in the current challenge",
		},
	)
)

// Register adds all challenge collectors to registry.
func Register(registry prometheus.Registerer) {
	registry.MustRegister(
		IntakeLoggedTotal,
		IntakeAmountTotal,
		GoalReachedTotal,
		RolloversTotal,
		OperationErrorsTotal,
		StoreWriteDuration,
		HistoryLength,
	)
}
