package service

import (
	"log/slog"
	"time"

	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsCollector periodically publishes connection pool statistics as
// Prometheus gauges.
type StatsCollector struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	open  prometheus.Gauge
	inUse prometheus.Gauge
	idle  prometheus.Gauge
	waits prometheus.Gauge

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewStatsCollector registers the pool gauges on reg. If interval is 0 or
// negative, defaults to 15 seconds.
func NewStatsCollector(
	s store.Store,
	logger *slog.Logger,
	interval time.Duration,
	reg prometheus.Registerer,
) (*StatsCollector, error) {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	c := &StatsCollector{
		Store:    s,
		Logger:   logger,
		Interval: interval,
		open: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "habits_db_open_connections",
			Help: "Established database connections, in use and idle.",
		}),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "habits_db_in_use_connections",
			Help: "Database connections currently in use.",
		}),
		idle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "habits_db_idle_connections",
			Help: "Idle database connections.",
		}),
		waits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "habits_db_wait_count",
			Help: "Total number of connections waited for.",
		}),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	for _, g := range []prometheus.Collector{c.open, c.inUse, c.idle, c.waits} {
		if err := reg.Register(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Start begins sampling in the background. Call Stop to shut it down.
func (c *StatsCollector) Start() {
	go c.run()
	c.Logger.Info("db stats collector started", "interval", c.Interval)
}

// Stop blocks until the sampling goroutine has exited.
func (c *StatsCollector) Stop() {
	close(c.stopCh)
	<-c.doneCh
	c.Logger.Info("db stats collector stopped")
}

func (c *StatsCollector) run() {
	defer close(c.doneCh)

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	c.Collect()

	for {
		select {
		case <-ticker.C:
			c.Collect()
		case <-c.stopCh:
			return
		}
	}
}

// Collect samples the pool once.
func (c *StatsCollector) Collect() {
	stats := c.Store.Stats()
	c.open.Set(float64(stats.OpenConnections))
	c.inUse.Set(float64(stats.InUse))
	c.idle.Set(float64(stats.Idle))
	c.waits.Set(float64(stats.WaitCount))
	c.Logger.Debug("db stats sampled",
		"open", stats.OpenConnections, "in_use", stats.InUse, "idle", stats.Idle)
}
