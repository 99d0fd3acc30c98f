package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TelemetryMessages counts telemetry feed messages by outcome.
	TelemetryMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hivewatch_telemetry_messages_total",
		Help: "Telemetry messages consumed from the feed.",
	}, []string{"outcome"})

	// AlertsEmitted counts alerts that passed the cooldown check and were persisted.
	AlertsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hivewatch_alerts_emitted_total",
		Help: "Alerts emitted after the cooldown check.",
	}, []string{"type"})

	// AlertsSuppressed counts alerts dropped inside their cooldown window.
	AlertsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hivewatch_alerts_suppressed_total",
		Help: "Alerts suppressed by the cooldown window.",
	}, []string{"type"})

	// StalenessTransitions counts hive staleness state changes.
	StalenessTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hivewatch_staleness_transitions_total",
		Help: "Staleness state machine transitions.",
	}, []string{"state"})
)
