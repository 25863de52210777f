// Package metrics defines and registers all custom Prometheus metrics for
// eventhub. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered against the default Prometheus registry via
// promauto at package load; the /metrics endpoint is exposed by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventhub"

// ── Check-in pipeline metrics ─────────────────────────────────────────────────

// CheckinsProcessedTotal counts door scans that completed processing.
// Label:
//   - source: the scan source reported by the sender (e.g. "qr", "manual")
var CheckinsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_processed_total",
		Help:      "Total number of door scans successfully processed.",
	},
	[]string{"source"},
)

// CheckinErrorsTotal counts scans that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "not_registered", "update_failed")
var CheckinErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkin_errors_total",
		Help:      "Total number of door scans that failed processing.",
	},
	[]string{"reason"},
)

// CheckinDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new scan, processed)
var CheckinDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkin_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// CheckinQueueDepth tracks the current number of scans waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var CheckinQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "checkin_queue_depth",
		Help:      "Current number of scans pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// CheckinProcessingDuration measures how long a single scan takes to process end-to-end.
// Label:
//   - result: "ok" or "error"
var CheckinProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkin_processing_duration_seconds",
		Help:      "Duration of scan processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// PermissionDenialsTotal counts requests refused by the permission evaluator.
// Labels:
//   - resource: the resource kind the actor targeted (e.g. "event")
//   - action: the attempted action (e.g. "update")
var PermissionDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_denials_total",
		Help:      "Total number of requests denied by the permission evaluator.",
	},
	[]string{"resource", "action"},
)

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)
