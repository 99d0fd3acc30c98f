package monitor

// MetricKind identifies one of the four hive telemetry metrics.
type MetricKind string

const (
	MetricTemperature MetricKind = "temperature"
	MetricHumidity    MetricKind = "humidity"
	MetricWeight      MetricKind = "weight"
	MetricGas         MetricKind = "gasLevel"
)

// Status is the three-band classification of a metric reading.
type Status string

const (
	StatusOptimal Status = "optimal"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// ClassifyMetric places a reading into its status band. Pure function;
// unknown kinds classify as optimal.
func ClassifyMetric(value float64, kind MetricKind) Status {
	switch kind {
	case MetricTemperature:
		if value >= 32 && value <= 36 {
			return StatusOptimal
		}
		if value >= 30 && value <= 38 {
			return StatusWarning
		}
		return StatusDanger

	case MetricHumidity:
		if value >= 50 && value <= 60 {
			return StatusOptimal
		}
		if value >= 45 && value <= 70 {
			return StatusWarning
		}
		return StatusDanger

	case MetricWeight:
		if value >= 12 && value <= 20 {
			return StatusOptimal
		}
		if value >= 10 && value <= 22 {
			return StatusWarning
		}
		return StatusDanger

	case MetricGas:
		if value < 200 {
			return StatusOptimal
		}
		if value < 500 {
			return StatusWarning
		}
		return StatusDanger

	default:
		return StatusOptimal
	}
}
