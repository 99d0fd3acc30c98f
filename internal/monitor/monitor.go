package monitor

import (
	"context"
	"sync"
	"time"

	"hivewatch/internal/alerts"
	"hivewatch/internal/logging"
	"hivewatch/internal/metrics"
	"hivewatch/internal/models"
)

// SnapshotStore persists historical telemetry points.
type SnapshotStore interface {
	CreateSnapshot(ctx context.Context, s models.Snapshot) error
}

// Broadcaster pushes live events to a user's dashboard clients.
type Broadcaster interface {
	Broadcast(userID string, event interface{})
}

// SeedStore persists the last-update timestamp per hive across restarts.
// Used only in cached seeding mode.
type SeedStore interface {
	LastUpdate(hiveID string) (time.Time, bool)
	SetLastUpdate(hiveID string, t time.Time)
}

// StalenessEvent is broadcast when a hive's staleness state changes.
// Speak is a one-time voice cue hint on entering the warn state; rendering
// and auto-dismiss are the client's concern.
type StalenessEvent struct {
	Kind   string `json:"kind"`
	HiveID string `json:"hive_id"`
	State  State  `json:"state"`
	Speak  bool   `json:"speak"`
}

// ReadingEvent is broadcast on every telemetry push.
type ReadingEvent struct {
	Kind    string                `json:"kind"`
	HiveID  string                `json:"hive_id"`
	Metrics models.HiveMetrics    `json:"metrics"`
	Status  map[MetricKind]Status `json:"status"`
}

// Options configures monitoring sessions.
type Options struct {
	// PollInterval drives the staleness re-evaluation tick.
	PollInterval time.Duration
	// Clock is injectable for tests; defaults to the wall clock.
	Clock alerts.Clock
	// SeedStore enables cached seeding when non-nil. When nil (optimistic
	// mode), a new session's last update is seeded at session start so a
	// hive that never reported does not alert immediately on boot.
	SeedStore SeedStore
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Session monitors one hive: classifies pushed readings, raises threshold
// alerts, and escalates staleness on a fixed poll independent of pushes.
type Session struct {
	userID string
	hiveID string

	alerts *alerts.Manager
	store  SnapshotStore
	hub    Broadcaster
	logger *logging.Logger
	clock  alerts.Clock
	seeds  SeedStore

	interval time.Duration

	mu         sync.Mutex
	lastUpdate time.Time
	state      State
	warnCued   bool
	lastStatus map[MetricKind]Status

	stop      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewSession creates a monitoring session for one (user, hive) pair.
func NewSession(userID, hiveID string, mgr *alerts.Manager, store SnapshotStore, hub Broadcaster, logger *logging.Logger, opts Options) *Session {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	s := &Session{
		userID:     userID,
		hiveID:     hiveID,
		alerts:     mgr,
		store:      store,
		hub:        hub,
		logger:     logger,
		clock:      opts.Clock,
		seeds:      opts.SeedStore,
		interval:   opts.PollInterval,
		state:      StateFresh,
		lastStatus: make(map[MetricKind]Status),
		stop:       make(chan struct{}),
	}
	s.lastUpdate = s.clock.Now()
	if s.seeds != nil {
		if seeded, ok := s.seeds.LastUpdate(hiveID); ok {
			s.lastUpdate = seeded
		}
	}
	return s
}

// Start launches the polling loop. At most one loop runs per session.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.run(ctx)
	})
}

// Close stops the polling loop. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Session) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick re-evaluates staleness against the clock. It must keep running even
// when no data arrives, so it is driven by the poll, not by pushes.
func (s *Session) Tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("Monitor tick panic for hive %s: %v", s.hiveID, r)
		}
	}()

	now := s.clock.Now()

	s.mu.Lock()
	prev := s.state
	next := EvaluateStaleness(s.lastUpdate, now)
	s.state = next
	speak := false
	if next == StateWarn && prev != StateWarn && !s.warnCued {
		s.warnCued = true
		speak = true
	}
	if next == StateFresh {
		s.warnCued = false
	}
	s.mu.Unlock()

	if next != prev {
		metrics.StalenessTransitions.WithLabelValues(string(next)).Inc()
		s.logger.Warnf("Hive %s staleness changed: %s -> %s", s.hiveID, prev, next)
		s.hub.Broadcast(s.userID, StalenessEvent{Kind: "staleness", HiveID: s.hiveID, State: next, Speak: speak})
	}

	// Cooldown-guarded escalation while the state persists.
	switch next {
	case StateDown:
		if err := s.alerts.HiveDown(ctx, s.userID, s.hiveID); err != nil {
			s.logger.Errorf("Hive down alert failed for %s: %v", s.hiveID, err)
		}
	case StateOffline:
		if err := s.alerts.HiveOffline(ctx, s.userID, s.hiveID); err != nil {
			s.logger.Errorf("Hive offline alert failed for %s: %v", s.hiveID, err)
		}
	}
}

// Record handles a telemetry push: refreshes staleness, classifies the four
// metrics, raises band alerts, persists a snapshot, and broadcasts the
// reading.
func (s *Session) Record(ctx context.Context, m models.HiveMetrics) {
	now := s.clock.Now()

	status := map[MetricKind]Status{
		MetricTemperature: ClassifyMetric(m.Temperature, MetricTemperature),
		MetricHumidity:    ClassifyMetric(m.Humidity, MetricHumidity),
		MetricWeight:      ClassifyMetric(m.Weight, MetricWeight),
		MetricGas:         ClassifyMetric(m.GasLevel, MetricGas),
	}

	s.mu.Lock()
	prevState := s.state
	prevStatus := s.lastStatus
	s.lastUpdate = now
	s.state = StateFresh
	s.warnCued = false
	s.lastStatus = status
	s.mu.Unlock()

	if s.seeds != nil {
		s.seeds.SetLastUpdate(s.hiveID, now)
	}

	if prevState != StateFresh {
		metrics.StalenessTransitions.WithLabelValues(string(StateFresh)).Inc()
		s.logger.Infof("Hive %s telemetry resumed after %s", s.hiveID, prevState)
		s.hub.Broadcast(s.userID, StalenessEvent{Kind: "staleness", HiveID: s.hiveID, State: StateFresh})
	}

	s.raiseMetricAlerts(ctx, m, status, prevStatus)

	snap := models.Snapshot{
		HiveID:      s.hiveID,
		Temperature: m.Temperature,
		Humidity:    m.Humidity,
		Weight:      m.Weight,
		GasLevel:    m.GasLevel,
		RecordedAt:  now,
	}
	if err := s.store.CreateSnapshot(ctx, snap); err != nil {
		s.logger.Errorf("Store snapshot failed for hive %s: %v", s.hiveID, err)
	}

	s.hub.Broadcast(s.userID, ReadingEvent{Kind: "reading", HiveID: s.hiveID, Metrics: m, Status: status})
}

func (s *Session) raiseMetricAlerts(ctx context.Context, m models.HiveMetrics, status, prev map[MetricKind]Status) {
	report := func(err error, kind MetricKind) {
		if err != nil {
			s.logger.Errorf("Metric alert failed for hive %s %s: %v", s.hiveID, kind, err)
		}
	}

	// Temperature and humidity alert on either side of the optimal band.
	switch {
	case m.Temperature > 36:
		report(s.alerts.TemperatureHigh(ctx, s.userID, m.Temperature, s.hiveID), MetricTemperature)
	case m.Temperature < 32:
		report(s.alerts.TemperatureLow(ctx, s.userID, m.Temperature, s.hiveID), MetricTemperature)
	case recovered(prev, status, MetricTemperature):
		report(s.alerts.TemperatureOptimal(ctx, s.userID, m.Temperature, s.hiveID), MetricTemperature)
	}

	switch {
	case m.Humidity > 60:
		report(s.alerts.HumidityHigh(ctx, s.userID, m.Humidity, s.hiveID), MetricHumidity)
	case m.Humidity < 50:
		report(s.alerts.HumidityLow(ctx, s.userID, m.Humidity, s.hiveID), MetricHumidity)
	case recovered(prev, status, MetricHumidity):
		report(s.alerts.HumidityOptimal(ctx, s.userID, m.Humidity, s.hiveID), MetricHumidity)
	}

	// Weight and gas only alert from the danger band.
	switch {
	case status[MetricWeight] == StatusDanger:
		report(s.alerts.WeightAnomaly(ctx, s.userID, m.Weight, s.hiveID), MetricWeight)
	case recovered(prev, status, MetricWeight):
		report(s.alerts.WeightOptimal(ctx, s.userID, m.Weight, s.hiveID), MetricWeight)
	}

	switch {
	case status[MetricGas] == StatusDanger:
		report(s.alerts.GasDetected(ctx, s.userID, m.GasLevel, s.hiveID), MetricGas)
	case recovered(prev, status, MetricGas):
		report(s.alerts.GasOptimal(ctx, s.userID, m.GasLevel, s.hiveID), MetricGas)
	}
}

// recovered reports a transition from a known non-optimal status to optimal.
func recovered(prev, cur map[MetricKind]Status, kind MetricKind) bool {
	p, ok := prev[kind]
	return ok && p != StatusOptimal && cur[kind] == StatusOptimal
}

// State returns the current staleness state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Registry owns one Session per (user, hive) pair, creating them lazily as
// telemetry arrives.
type Registry struct {
	mgr    *alerts.Manager
	store  SnapshotStore
	hub    Broadcaster
	logger *logging.Logger
	opts   Options

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry constructs a session registry.
func NewRegistry(mgr *alerts.Manager, store SnapshotStore, hub Broadcaster, logger *logging.Logger, opts Options) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		mgr:      mgr,
		store:    store,
		hub:      hub,
		logger:   logger,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// Record routes a telemetry push to the hive's session, starting one if
// needed.
func (r *Registry) Record(ctx context.Context, userID, hiveID string, m models.HiveMetrics) {
	r.mu.Lock()
	key := userID + "/" + hiveID
	s, ok := r.sessions[key]
	if !ok {
		s = NewSession(userID, hiveID, r.mgr, r.store, r.hub, r.logger, r.opts)
		r.sessions[key] = s
		s.Start(r.ctx)
		r.logger.Infof("Monitoring session started for hive %s (user %s)", hiveID, userID)
	}
	r.mu.Unlock()
	s.Record(ctx, m)
}

// Close stops all sessions and their polling loops.
func (r *Registry) Close() {
	r.cancel()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		s.Close()
	}
}
