// Package metrics defines and registers the custom Prometheus metrics of the
// ordering gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordering"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "rejected" (collaborator refused), or "error" (storage failure)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// NavigationDecisionsTotal counts route authorization outcomes.
// Label:
//   - decision: ALLOW, REDIRECT_LOGIN or REDIRECT_UNAUTHORIZED
var NavigationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigation_decisions_total",
		Help:      "Total number of navigation authorization decisions.",
	},
	[]string{"decision"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartItemsAddedTotal counts units added to carts.
var CartItemsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_added_total",
		Help:      "Total number of item units added to carts.",
	},
)

// OrdersSubmittedTotal counts order submissions.
// Label:
//   - result: "ok", "empty_cart" or "error"
var OrdersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of order submissions, by result.",
	},
	[]string{"result"},
)

// OrderValue observes the total of submitted carts.
var OrderValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value",
		Help:      "Cart total of successfully submitted orders.",
		Buckets:   prometheus.ExponentialBuckets(50, 2, 10), // 50 to 25600
	},
)

// ── Remote API metrics ────────────────────────────────────────────────────────

// RemoteRequestDuration measures calls to the ordering REST API.
// Labels:
//   - operation: "login", "submit_order", "resolve_table", "update_order_status"
//   - outcome: "ok" or "error"
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of calls to the ordering REST API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)
