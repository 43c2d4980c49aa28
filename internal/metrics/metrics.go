// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "seniorvoice",
			Name:      "turns_total",
			Help:      "Completed agent turns, including short-circuited ones.",
		},
	)

	PlanFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "seniorvoice",
			Name:      "plan_fallbacks_total",
			Help:      "Model replies that could not be parsed into a plan.",
		},
	)

	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seniorvoice",
			Name:      "tool_invocations_total",
			Help:      "Tool executions by tool name.",
		},
		[]string{"tool"},
	)

	ToolFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seniorvoice",
			Name:      "tool_failures_total",
			Help:      "Tool executions that returned an error, by tool name.",
		},
		[]string{"tool"},
	)

	ProactiveAlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seniorvoice",
			Name:      "proactive_alerts_total",
			Help:      "Alerts raised by the proactive monitor, by kind.",
		},
		[]string{"kind"},
	)
)
