package kafka

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"

	"hivewatch/internal/config"
	"hivewatch/internal/logging"
	"hivewatch/internal/metrics"
	"hivewatch/internal/models"
	"hivewatch/internal/monitor"
)

// telemetryMessage is the wire shape pushed by hive gateways.
type telemetryMessage struct {
	UserID      string  `json:"user_id"`
	HiveID      string  `json:"hive_id"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Weight      float64 `json:"weight"`
	GasLevel    float64 `json:"gas_level"`
}

// Consumer reads the telemetry feed and forwards readings to the monitor.
// Feed errors are treated as "no data": the staleness poll reacts to the
// silence, the consumer just keeps reading.
type Consumer struct {
	reader   *kafka.Reader
	registry *monitor.Registry
	logger   *logging.Logger
}

func NewConsumer(cfg config.Config, registry *monitor.Registry, logger *logging.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Broker},
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	return &Consumer{reader: reader, registry: registry, logger: logger}
}

func (c *Consumer) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.logger.Infof("Kafka consumer started on topic %s", c.reader.Config().Topic)

		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.logger.Infof("Kafka consumer stopped")
					return
				}
				metrics.TelemetryMessages.WithLabelValues("error").Inc()
				c.logger.Errorf("Read message failed: %v", err)
				continue
			}

			var tm telemetryMessage
			if err := json.Unmarshal(msg.Value, &tm); err != nil {
				metrics.TelemetryMessages.WithLabelValues("invalid").Inc()
				c.logger.Errorf("Unmarshal message failed: %v", err)
				continue
			}

			if tm.UserID == "" || tm.HiveID == "" {
				metrics.TelemetryMessages.WithLabelValues("invalid").Inc()
				c.logger.Errorf("Invalid message: missing user_id or hive_id")
				continue
			}

			metrics.TelemetryMessages.WithLabelValues("ok").Inc()
			c.registry.Record(ctx, tm.UserID, tm.HiveID, models.HiveMetrics{
				Temperature: tm.Temperature,
				Humidity:    tm.Humidity,
				Weight:      tm.Weight,
				GasLevel:    tm.GasLevel,
			})
		}
	}()
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Errorf("Kafka reader close failed: %v", err)
	}
}
