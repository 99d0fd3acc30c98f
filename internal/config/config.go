package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Staleness seeding modes. "optimistic" starts each monitoring session fresh;
// "cached" seeds the last-update timestamp from the local cache so an outage
// spanning a restart is still detected.
const (
	SeedOptimistic = "optimistic"
	SeedCached     = "cached"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	DB struct {
		DSN string
	}
	API struct {
		Port     string
		BasePath string
	}
	Logging struct {
		Dir   string
		Level string
	}
	Telegram struct {
		BotToken      string
		ChatID        int64
		RatePerSecond int
	}
	Cache struct {
		Path string
		TTL  time.Duration
	}
	Monitor struct {
		PollInterval time.Duration
		SeedMode     string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Kafka settings
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	// Database DSN
	cfg.DB.DSN = os.Getenv("DB_DSN")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Logging settings
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Telegram escalation settings (optional)
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if id, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64); err == nil {
		cfg.Telegram.ChatID = id
	}
	if r, err := strconv.Atoi(os.Getenv("TELEGRAM_RATE_LIMIT")); err == nil {
		cfg.Telegram.RatePerSecond = r
	}

	// Local cache settings
	cfg.Cache.Path = os.Getenv("CACHE_PATH")
	if ttl, err := time.ParseDuration(os.Getenv("CACHE_TTL")); err == nil {
		cfg.Cache.TTL = ttl
	}

	// Staleness monitor settings
	if iv, err := time.ParseDuration(os.Getenv("MONITOR_POLL_INTERVAL")); err == nil {
		cfg.Monitor.PollInterval = iv
	}
	cfg.Monitor.SeedMode = os.Getenv("STALENESS_SEED")

	// Validate required settings
	missing := []string{}
	if cfg.Kafka.Broker == "" {
		missing = append(missing, "KAFKA_BROKER")
	}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	if cfg.Monitor.SeedMode != "" && cfg.Monitor.SeedMode != SeedOptimistic && cfg.Monitor.SeedMode != SeedCached {
		return Config{}, fmt.Errorf("invalid STALENESS_SEED %q (want %s or %s)", cfg.Monitor.SeedMode, SeedOptimistic, SeedCached)
	}

	// Apply defaults
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "hive_telemetry"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "hivewatch"
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v1"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Telegram.RatePerSecond == 0 {
		cfg.Telegram.RatePerSecond = 1
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "hivewatch-cache.db"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 24 * time.Hour
	}
	if cfg.Monitor.PollInterval == 0 {
		cfg.Monitor.PollInterval = 10 * time.Second
	}
	if cfg.Monitor.SeedMode == "" {
		cfg.Monitor.SeedMode = SeedOptimistic
	}

	return cfg, nil
}
