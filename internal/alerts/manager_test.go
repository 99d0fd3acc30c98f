package alerts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"hivewatch/internal/logging"
	"hivewatch/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stubStore struct {
	mu      sync.Mutex
	created []models.Notification
	err     error
}

func (s *stubStore) CreateNotification(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, n)
	return nil
}

func (s *stubStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

func (s *stubStore) last() models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created[len(s.created)-1]
}

type stubChannel struct {
	mu        sync.Mutex
	published []models.Notification
}

func (c *stubChannel) Publish(_ context.Context, n models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, n)
	return nil
}

func newTestLogger(t *testing.T) *logging.Logger {
	t.Helper()
	logger, err := logging.New(t.TempDir(), "error")
	if err != nil {
		t.Fatalf("create test logger: %v", err)
	}
	t.Cleanup(logger.Close)
	return logger
}

func TestRaiseSuppressedWithinCooldown(t *testing.T) {
	store := &stubStore{}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock))
	ctx := context.Background()

	if err := m.TemperatureHigh(ctx, "user-1", 38.2, "hive-1"); err != nil {
		t.Fatalf("first raise: %v", err)
	}
	clock.Advance(5 * time.Minute)
	if err := m.TemperatureHigh(ctx, "user-1", 38.5, "hive-1"); err != nil {
		t.Fatalf("second raise: %v", err)
	}

	if got := store.count(); got != 1 {
		t.Fatalf("expected 1 notification, got %d", got)
	}
}

func TestRaiseFiresAfterCooldownExpires(t *testing.T) {
	store := &stubStore{}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock))
	ctx := context.Background()

	if err := m.TemperatureHigh(ctx, "user-1", 38.2, "hive-1"); err != nil {
		t.Fatalf("first raise: %v", err)
	}
	clock.Advance(16 * time.Minute)
	if err := m.TemperatureHigh(ctx, "user-1", 38.2, "hive-1"); err != nil {
		t.Fatalf("second raise: %v", err)
	}

	if got := store.count(); got != 2 {
		t.Fatalf("expected 2 notifications, got %d", got)
	}
}

func TestDistinctKeysDoNotShareCooldown(t *testing.T) {
	store := &stubStore{}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock))
	ctx := context.Background()

	_ = m.TemperatureHigh(ctx, "user-1", 38, "hive-1")
	_ = m.TemperatureHigh(ctx, "user-1", 38, "hive-2")
	_ = m.TemperatureHigh(ctx, "user-2", 38, "hive-1")
	_ = m.HumidityHigh(ctx, "user-1", 75, "hive-1")

	if got := store.count(); got != 4 {
		t.Fatalf("expected 4 notifications across distinct keys, got %d", got)
	}
}

func TestEmptyHiveIDSharesDefaultBucket(t *testing.T) {
	store := &stubStore{}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock))
	ctx := context.Background()

	_ = m.GasDetected(ctx, "user-1", 600, "")
	_ = m.GasDetected(ctx, "user-1", 650, "")

	if got := store.count(); got != 1 {
		t.Fatalf("expected hive-less alerts to share a bucket, got %d notifications", got)
	}
}

func TestFailedWriteDoesNotConsumeCooldown(t *testing.T) {
	store := &stubStore{err: errors.New("db down")}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock))
	ctx := context.Background()

	if err := m.GasDetected(ctx, "user-1", 600, "hive-1"); err != nil {
		t.Fatalf("raise with failing store should not return error, got %v", err)
	}
	if got := store.count(); got != 0 {
		t.Fatalf("expected no notification on failed write, got %d", got)
	}

	// Store recovers; the window must not have been consumed.
	store.mu.Lock()
	store.err = nil
	store.mu.Unlock()

	if err := m.GasDetected(ctx, "user-1", 600, "hive-1"); err != nil {
		t.Fatalf("raise after recovery: %v", err)
	}
	if got := store.count(); got != 1 {
		t.Fatalf("expected 1 notification after store recovery, got %d", got)
	}
}

func TestRaiseRejectsBadInput(t *testing.T) {
	store := &stubStore{}
	m := NewManager(store, newTestLogger(t), WithClock(newFakeClock()))
	ctx := context.Background()

	if err := m.Raise(ctx, Alert{Type: TypeHiveDown}); err == nil {
		t.Fatal("expected error for empty user id")
	}
	if err := m.Raise(ctx, Alert{UserID: "user-1", Type: Type("bogus")}); err == nil {
		t.Fatal("expected error for unknown alert type")
	}
	if got := store.count(); got != 0 {
		t.Fatalf("expected no notifications, got %d", got)
	}
}

func TestSeverityMapsToNotificationType(t *testing.T) {
	store := &stubStore{}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock))
	ctx := context.Background()

	_ = m.HiveOffline(ctx, "user-1", "hive-1")
	if got := store.last().Type; got != models.NotificationError {
		t.Errorf("critical alert stored as %q, want %q", got, models.NotificationError)
	}

	_ = m.TemperatureHigh(ctx, "user-1", 38, "hive-1")
	if got := store.last().Type; got != models.NotificationWarning {
		t.Errorf("warning alert stored as %q, want %q", got, models.NotificationWarning)
	}

	_ = m.TemperatureOptimal(ctx, "user-1", 34, "hive-1")
	if got := store.last().Type; got != models.NotificationInfo {
		t.Errorf("success alert stored as %q, want %q", got, models.NotificationInfo)
	}
}

func TestMessageIncludesMetricValue(t *testing.T) {
	store := &stubStore{}
	m := NewManager(store, newTestLogger(t), WithClock(newFakeClock()))

	_ = m.TemperatureHigh(context.Background(), "user-1", 38.25, "hive-1")

	n := store.last()
	if n.Title != "High Temperature Alert" {
		t.Errorf("unexpected title %q", n.Title)
	}
	if want := "38.2"; !strings.Contains(n.Message, want) {
		t.Errorf("message %q does not contain value %q", n.Message, want)
	}
}

func TestChannelsReceiveEmittedNotifications(t *testing.T) {
	store := &stubStore{}
	ch := &stubChannel{}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock), WithChannel(ch))
	ctx := context.Background()

	_ = m.HiveDown(ctx, "user-1", "hive-1")
	// Suppressed raise must not reach the channel either.
	clock.Advance(time.Minute)
	_ = m.HiveDown(ctx, "user-1", "hive-1")

	ch.mu.Lock()
	defer ch.mu.Unlock()
	if len(ch.published) != 1 {
		t.Fatalf("expected 1 published notification, got %d", len(ch.published))
	}
	if ch.published[0].UserID != "user-1" {
		t.Errorf("unexpected user id %q", ch.published[0].UserID)
	}
}

func TestClearHistoryResetsCooldowns(t *testing.T) {
	store := &stubStore{}
	m := NewManager(store, newTestLogger(t), WithClock(newFakeClock()))
	ctx := context.Background()

	_ = m.HiveDown(ctx, "user-1", "hive-1")
	m.ClearHistory()
	_ = m.HiveDown(ctx, "user-1", "hive-1")

	if got := store.count(); got != 2 {
		t.Fatalf("expected 2 notifications after history reset, got %d", got)
	}
}

func TestCleanupPurgesExpiredEntries(t *testing.T) {
	store := &stubStore{}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock))
	ctx := context.Background()

	_ = m.HiveDown(ctx, "user-1", "hive-1")
	_ = m.WeightOptimal(ctx, "user-1", 15, "hive-1")

	// Past every window: both entries are purgeable.
	clock.Advance(maxCooldown() + time.Minute)
	m.Cleanup()

	m.mu.Lock()
	remaining := len(m.lastFired)
	m.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected empty cooldown map after cleanup, got %d entries", remaining)
	}
}

func TestCleanupKeepsLiveEntries(t *testing.T) {
	store := &stubStore{}
	clock := newFakeClock()
	m := NewManager(store, newTestLogger(t), WithClock(clock))
	ctx := context.Background()

	_ = m.WeightOptimal(ctx, "user-1", 15, "hive-1") // 2h window
	clock.Advance(time.Hour)
	m.Cleanup()

	clock.Advance(30 * time.Minute) // 1h30m elapsed, still inside the window
	_ = m.WeightOptimal(ctx, "user-1", 15, "hive-1")

	if got := store.count(); got != 1 {
		t.Fatalf("cleanup dropped a live entry: got %d notifications, want 1", got)
	}
}

func TestConcurrentRaisesEmitOnce(t *testing.T) {
	store := &stubStore{}
	m := NewManager(store, newTestLogger(t), WithClock(newFakeClock()))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.HiveDown(ctx, "user-1", "hive-1")
		}()
	}
	wg.Wait()

	if got := store.count(); got != 1 {
		t.Fatalf("expected exactly 1 notification from concurrent raises, got %d", got)
	}
}
