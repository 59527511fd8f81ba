// Package metrics defines and registers all custom Prometheus metrics for
// the news portal gateway. It is the single source of truth for metric
// names, labels, and help strings; promauto registers everything with the
// default registry at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// RefreshTotal counts credential refresh attempts made by the transport.
// Label:
//   - outcome: "success" or "failure"
var RefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_refresh_total",
		Help:      "Total number of credential refresh attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardDecisionsTotal counts route-guard evaluations at the gateway.
// Label:
//   - decision: "allowed", "redirect_login", or "redirect_unauthorized"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// SessionResolutionsTotal counts per-visitor session resolutions.
// Label:
//   - source: "cache", "token", "backend", or "anonymous"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of visitor session resolutions, by source.",
	},
	[]string{"source"},
)

// InteractionFailuresTotal counts failed bookmark and comment operations
// relayed through the gateway.
// Labels:
//   - widget: "bookmark" or "comment"
//   - op: the operation that failed (e.g. "toggle", "create", "update", "delete")
var InteractionFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interaction_failures_total",
		Help:      "Total number of failed interaction operations, by widget and operation.",
	},
	[]string{"widget", "op"},
)
