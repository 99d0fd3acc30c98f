package monitor

import "time"

// State is the discrete staleness classification of a hive's telemetry feed.
type State string

const (
	StateFresh   State = "fresh"
	StateWarn    State = "warn-1min"
	StateDown    State = "down-2min"
	StateOffline State = "offline-10min"
)

// Staleness thresholds. Transitions are plain threshold crossings in either
// direction; recovery is immediate on any fresh push, no debounce.
const (
	warnAfter    = time.Minute
	downAfter    = 2 * time.Minute
	offlineAfter = 10 * time.Minute
)

// EvaluateStaleness classifies elapsed time since the last telemetry push.
func EvaluateStaleness(lastUpdate, now time.Time) State {
	elapsed := now.Sub(lastUpdate)
	switch {
	case elapsed <= warnAfter:
		return StateFresh
	case elapsed <= downAfter:
		return StateWarn
	case elapsed <= offlineAfter:
		return StateDown
	default:
		return StateOffline
	}
}
