// Package metrics defines and registers the custom Prometheus metrics of the
// postboard API. HTTP request metrics come from echoprometheus; this package
// covers what the middleware cannot see.
//
// All collectors register with the default registry through promauto when the
// package is imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "postboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts authentication outcomes.
// Labels:
//   - event: "register", "login", "logout", "forgot_password", "change_password"
//   - result: "success", "field_error", "error"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of authentication operations, by event and result.",
	},
	[]string{"event", "result"},
)

// AuditWriteFailuresTotal counts audit trail inserts that failed and were dropped.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of auth audit events that could not be stored.",
	},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostMutationsTotal counts post writes.
// Label:
//   - op: "create", "update", "delete"
var PostMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of post mutations, by operation.",
	},
	[]string{"op"},
)

// PaginationDuration measures a full page read (count and window joined).
// Label:
//   - resource: the paginated collection (e.g. "posts")
var PaginationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pagination_duration_seconds",
		Help:      "Duration of paginated reads including the total count.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailDeliveriesTotal counts delivery attempts made by the mail dispatcher.
// Label:
//   - result: "sent" or "failed"
var MailDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_deliveries_total",
		Help:      "Total number of mail delivery attempts, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks messages waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
