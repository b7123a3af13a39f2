// Package metrics defines and registers all custom Prometheus metrics for the
// ContestHub API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contesthub"

// ── Contest metrics ───────────────────────────────────────────────────────────

// ContestsCreatedTotal counts newly created contests.
// Label:
//   - type: the contest category supplied by the creator (e.g. "design")
var ContestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contests_created_total",
		Help:      "Total number of contests created, by contest type.",
	},
	[]string{"type"},
)

// ContestStatusChangesTotal counts admin review decisions.
// Label:
//   - status: the status applied by the review ("accepted" or "rejected")
var ContestStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contest_status_changes_total",
		Help:      "Total number of contest status transitions applied by review.",
	},
	[]string{"status"},
)

// WinnersDeclaredTotal counts contests moved to completed by a winner
// declaration.
var WinnersDeclaredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "winners_declared_total",
		Help:      "Total number of winner declarations.",
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsRecordedTotal counts successfully recorded payments. Replayed
// transactions are not counted.
var PaymentsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payment records inserted.",
	},
)

// PaymentIntentErrorsTotal counts failed payment-intent requests.
// Label:
//   - reason: short description of the failure (e.g. "provider")
var PaymentIntentErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intent_errors_total",
		Help:      "Total number of payment intent requests that failed.",
	},
	[]string{"reason"},
)

// ── Submission metrics ────────────────────────────────────────────────────────

// SubmissionsReceivedTotal counts accepted contest entries.
var SubmissionsReceivedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_received_total",
		Help:      "Total number of contest submissions recorded.",
	},
)
