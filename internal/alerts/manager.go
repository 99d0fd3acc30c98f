package alerts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hivewatch/internal/logging"
	"hivewatch/internal/metrics"
	"hivewatch/internal/models"
)

// NotificationStore persists notification records.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n models.Notification) error
}

// Channel receives a copy of every emitted notification (WebSocket hub,
// Telegram escalation). Channel errors are logged, never propagated.
type Channel interface {
	Publish(ctx context.Context, n models.Notification) error
}

// Clock provides time for cooldown comparisons.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Alert is a request to raise an alert for a user. HiveID may be empty, in
// which case all hive-less alerts of the same type share one cooldown bucket.
type Alert struct {
	UserID      string
	Type        Type
	Severity    Severity
	Title       string
	Message     string
	HiveID      string
	MetricValue float64
	Threshold   float64
}

// Manager deduplicates alerts per (user, type, hive) key using the fixed
// cooldown table and persists the surviving ones as notifications. Construct
// exactly one per application instance.
type Manager struct {
	store    NotificationStore
	logger   *logging.Logger
	clock    Clock
	channels []Channel

	mu        sync.Mutex
	lastFired map[string]time.Time
}

// Option configures the manager.
type Option func(*Manager)

// WithClock overrides the default clock.
func WithClock(clock Clock) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithChannel registers an additional delivery channel.
func WithChannel(ch Channel) Option {
	return func(m *Manager) {
		if ch != nil {
			m.channels = append(m.channels, ch)
		}
	}
}

// NewManager constructs an alert Manager.
func NewManager(store NotificationStore, logger *logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		logger:    logger,
		clock:     systemClock{},
		lastFired: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func dedupKey(userID string, t Type, hiveID string) string {
	if hiveID == "" {
		hiveID = "default"
	}
	return userID + "-" + string(t) + "-" + hiveID
}

// Raise emits the alert unless its key is inside the cooldown window.
// Suppression is silent. The key's timestamp is reserved before the store
// write so concurrent calls for the same key cannot both pass the check; a
// failed write releases the reservation and does not consume the window.
// Store failures are logged and contained, they never reach the caller.
func (m *Manager) Raise(ctx context.Context, a Alert) error {
	if a.UserID == "" {
		return errors.New("alerts: empty user id")
	}
	def, ok := definitions[a.Type]
	if !ok {
		return fmt.Errorf("alerts: unknown alert type %q", a.Type)
	}

	key := dedupKey(a.UserID, a.Type, a.HiveID)
	now := m.clock.Now()

	m.mu.Lock()
	last, seen := m.lastFired[key]
	if seen && now.Sub(last) < def.Cooldown {
		m.mu.Unlock()
		metrics.AlertsSuppressed.WithLabelValues(string(a.Type)).Inc()
		m.logger.Debugf("Alert %s suppressed, %s left in cooldown", key, def.Cooldown-now.Sub(last))
		return nil
	}
	m.lastFired[key] = now
	m.mu.Unlock()

	n := models.Notification{
		ID:        uuid.NewString(),
		UserID:    a.UserID,
		Title:     a.Title,
		Message:   a.Message,
		Type:      notificationType(a.Severity),
		Read:      false,
		CreatedAt: now,
	}

	if err := m.store.CreateNotification(ctx, n); err != nil {
		m.mu.Lock()
		// Release the reservation only if it is still ours.
		if cur, ok := m.lastFired[key]; ok && cur.Equal(now) {
			if seen {
				m.lastFired[key] = last
			} else {
				delete(m.lastFired, key)
			}
		}
		m.mu.Unlock()
		m.logger.Errorf("Create notification failed for %s: %v", key, err)
		return nil
	}

	metrics.AlertsEmitted.WithLabelValues(string(a.Type)).Inc()
	m.logger.Infof("Alert created: %s for user %s", a.Type, a.UserID)

	for _, ch := range m.channels {
		if err := ch.Publish(ctx, n); err != nil {
			m.logger.Errorf("Alert channel publish failed for %s: %v", key, err)
		}
	}
	return nil
}

// raise looks up the definition for t and fills in display strings.
func (m *Manager) raise(ctx context.Context, t Type, userID, hiveID string, value float64) error {
	def := definitions[t]
	msg := def.Message
	if def.HasValue {
		msg = fmt.Sprintf(def.Message, value)
	}
	return m.Raise(ctx, Alert{
		UserID:      userID,
		Type:        t,
		Severity:    def.Severity,
		Title:       def.Title,
		Message:     msg,
		HiveID:      hiveID,
		MetricValue: value,
		Threshold:   def.Threshold,
	})
}

// Hive monitoring alerts.

func (m *Manager) HiveDown(ctx context.Context, userID, hiveID string) error {
	return m.raise(ctx, TypeHiveDown, userID, hiveID, 0)
}

func (m *Manager) HiveOffline(ctx context.Context, userID, hiveID string) error {
	return m.raise(ctx, TypeHiveOffline, userID, hiveID, 0)
}

// Metric band alerts.

func (m *Manager) TemperatureHigh(ctx context.Context, userID string, temperature float64, hiveID string) error {
	return m.raise(ctx, TypeTemperatureHigh, userID, hiveID, temperature)
}

func (m *Manager) TemperatureLow(ctx context.Context, userID string, temperature float64, hiveID string) error {
	return m.raise(ctx, TypeTemperatureLow, userID, hiveID, temperature)
}

func (m *Manager) HumidityHigh(ctx context.Context, userID string, humidity float64, hiveID string) error {
	return m.raise(ctx, TypeHumidityHigh, userID, hiveID, humidity)
}

func (m *Manager) HumidityLow(ctx context.Context, userID string, humidity float64, hiveID string) error {
	return m.raise(ctx, TypeHumidityLow, userID, hiveID, humidity)
}

func (m *Manager) WeightAnomaly(ctx context.Context, userID string, weight float64, hiveID string) error {
	return m.raise(ctx, TypeWeightAnomaly, userID, hiveID, weight)
}

func (m *Manager) GasDetected(ctx context.Context, userID string, gasLevel float64, hiveID string) error {
	return m.raise(ctx, TypeGasDetected, userID, hiveID, gasLevel)
}

// Recovery alerts.

func (m *Manager) TemperatureOptimal(ctx context.Context, userID string, temperature float64, hiveID string) error {
	return m.raise(ctx, TypeTemperatureOptimal, userID, hiveID, temperature)
}

func (m *Manager) HumidityOptimal(ctx context.Context, userID string, humidity float64, hiveID string) error {
	return m.raise(ctx, TypeHumidityOptimal, userID, hiveID, humidity)
}

func (m *Manager) WeightOptimal(ctx context.Context, userID string, weight float64, hiveID string) error {
	return m.raise(ctx, TypeWeightOptimal, userID, hiveID, weight)
}

func (m *Manager) GasOptimal(ctx context.Context, userID string, gasLevel float64, hiveID string) error {
	return m.raise(ctx, TypeGasOptimal, userID, hiveID, gasLevel)
}

// ClearHistory wipes the cooldown map. Intended for test isolation.
func (m *Manager) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFired = make(map[string]time.Time)
}

// Cleanup purges entries older than the longest cooldown window.
func (m *Manager) Cleanup() {
	cutoff := m.clock.Now().Add(-maxCooldown())
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, firedAt := range m.lastFired {
		if firedAt.Before(cutoff) {
			delete(m.lastFired, key)
		}
	}
}

// RunJanitor runs Cleanup on the given interval until ctx is cancelled, so
// the cooldown map stays bounded over long deployments.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

// notificationType maps alert severity to the notification list type.
func notificationType(s Severity) string {
	switch s {
	case SeverityCritical:
		return models.NotificationError
	case SeverityWarning:
		return models.NotificationWarning
	default:
		return models.NotificationInfo
	}
}
