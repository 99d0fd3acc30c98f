package alerts

import "time"

// Type identifies an alert category. Each type carries a fixed cooldown,
// severity, title and message template in the definitions table.
type Type string

const (
	TypeHiveDown           Type = "hive_down"
	TypeHiveOffline        Type = "hive_offline"
	TypeTemperatureHigh    Type = "temperature_high"
	TypeTemperatureLow     Type = "temperature_low"
	TypeHumidityHigh       Type = "humidity_high"
	TypeHumidityLow        Type = "humidity_low"
	TypeWeightAnomaly      Type = "weight_anomaly"
	TypeGasDetected        Type = "gas_detected"
	TypeTemperatureOptimal Type = "temperature_optimal"
	TypeHumidityOptimal    Type = "humidity_optimal"
	TypeWeightOptimal      Type = "weight_optimal"
	TypeGasOptimal         Type = "gas_optimal"
)

// Severity of a raised alert.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
	SeveritySuccess  Severity = "success"
)

// definition binds a type to its cooldown, severity and display strings.
// Message templates with a verb receive the metric value via fmt.Sprintf.
type definition struct {
	Cooldown  time.Duration
	Severity  Severity
	Title     string
	Message   string
	HasValue  bool
	Threshold float64
}

var definitions = map[Type]definition{
	TypeHiveDown: {
		Cooldown: 5 * time.Minute,
		Severity: SeverityWarning,
		Title:    "Hive Down Alert",
		Message:  "Your hive has been offline for over 2 minutes. Please check the connection and power supply.",
	},
	TypeHiveOffline: {
		Cooldown: 10 * time.Minute,
		Severity: SeverityCritical,
		Title:    "Hive Offline Alert",
		Message:  "Your hive has been offline for over 10 minutes. This requires immediate attention.",
	},
	TypeTemperatureHigh: {
		Cooldown:  15 * time.Minute,
		Severity:  SeverityWarning,
		Title:     "High Temperature Alert",
		Message:   "Hive temperature is %.1f°C, which is above the recommended range (32-36°C).",
		HasValue:  true,
		Threshold: 36,
	},
	TypeTemperatureLow: {
		Cooldown:  15 * time.Minute,
		Severity:  SeverityWarning,
		Title:     "Low Temperature Alert",
		Message:   "Hive temperature is %.1f°C, which is below the recommended range (32-36°C).",
		HasValue:  true,
		Threshold: 32,
	},
	TypeHumidityHigh: {
		Cooldown:  15 * time.Minute,
		Severity:  SeverityWarning,
		Title:     "High Humidity Alert",
		Message:   "Hive humidity is %.1f%%, which is above the recommended range (50-60%%).",
		HasValue:  true,
		Threshold: 60,
	},
	TypeHumidityLow: {
		Cooldown:  15 * time.Minute,
		Severity:  SeverityWarning,
		Title:     "Low Humidity Alert",
		Message:   "Hive humidity is %.1f%%, which is below the recommended range (50-60%%).",
		HasValue:  true,
		Threshold: 50,
	},
	TypeWeightAnomaly: {
		Cooldown: 30 * time.Minute,
		Severity: SeverityWarning,
		Title:    "Weight Anomaly Alert",
		Message:  "Hive weight has changed significantly to %.1fkg. This might indicate swarming or other issues.",
		HasValue: true,
	},
	TypeGasDetected: {
		Cooldown:  2 * time.Minute,
		Severity:  SeverityCritical,
		Title:     "Gas Detected Alert",
		Message:   "Unusual gas levels detected: %.1f ppm. This could indicate a problem with the hive.",
		HasValue:  true,
		Threshold: 500,
	},
	TypeTemperatureOptimal: {
		Cooldown: time.Hour,
		Severity: SeveritySuccess,
		Title:    "Temperature Optimal",
		Message:  "Hive temperature is now %.1f°C, which is within the optimal range (32-36°C).",
		HasValue: true,
	},
	TypeHumidityOptimal: {
		Cooldown: time.Hour,
		Severity: SeveritySuccess,
		Title:    "Humidity Optimal",
		Message:  "Hive humidity is now %.1f%%, which is within the optimal range (50-60%%).",
		HasValue: true,
	},
	TypeWeightOptimal: {
		Cooldown: 2 * time.Hour,
		Severity: SeveritySuccess,
		Title:    "Weight Optimal",
		Message:  "Hive weight is now %.1fkg, which is within the target range (12-20kg).",
		HasValue: true,
	},
	TypeGasOptimal: {
		Cooldown: 30 * time.Minute,
		Severity: SeveritySuccess,
		Title:    "Gas Level Safe",
		Message:  "Gas level is now %.1f ppm, which is within the safe range (<200 ppm).",
		HasValue: true,
	},
}

// Cooldown returns the cooldown window for a type, zero if unknown.
func (t Type) Cooldown() time.Duration {
	return definitions[t].Cooldown
}

// maxCooldown is the longest window in the definitions table; history entries
// older than this can never suppress anything and are safe to purge.
func maxCooldown() time.Duration {
	var max time.Duration
	for _, def := range definitions {
		if def.Cooldown > max {
			max = def.Cooldown
		}
	}
	return max
}
