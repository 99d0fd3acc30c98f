package models

import "time"

// HiveMetrics is a single environmental reading pushed by the telemetry feed.
type HiveMetrics struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Weight      float64 `json:"weight"`
	GasLevel    float64 `json:"gas_level"`
}

// Snapshot is a persisted historical telemetry point for trend charts.
type Snapshot struct {
	ID          string    `json:"id"`
	HiveID      string    `json:"hive_id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Weight      float64   `json:"weight"`
	GasLevel    float64   `json:"gas_level"`
	RecordedAt  time.Time `json:"recorded_at"`
}
