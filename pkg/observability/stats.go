package observability

import (
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StatsCollector periodically refreshes the catalog row-count gauges.
type StatsCollector struct {
	db      *sql.DB
	metrics *Metrics
	logger  logrus.FieldLogger
	cron    *cron.Cron
}

// NewStatsCollector builds a collector; call Start to begin refreshing.
func NewStatsCollector(db *sql.DB, metrics *Metrics, logger logrus.FieldLogger) *StatsCollector {
	return &StatsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start refreshes once immediately, then on the given cron schedule
// (e.g. "@every 1m").
func (c *StatsCollector) Start(schedule string) error {
	if err := c.Refresh(context.Background()); err != nil {
		c.logger.WithError(err).Warn("initial stats refresh failed")
	}
	if _, err := c.cron.AddFunc(schedule, func() {
		if err := c.Refresh(context.Background()); err != nil {
			c.logger.WithError(err).Warn("stats refresh failed")
		}
	}); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (c *StatsCollector) Stop() {
	<-c.cron.Stop().Done()
}

// Refresh updates the row-count gauges from the database.
func (c *StatsCollector) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	counts := []struct {
		table string
		gauge interface{ Set(float64) }
	}{
		{"games", c.metrics.GamesTotal},
		{"reviews", c.metrics.ReviewsTotal},
		{"users", c.metrics.UsersTotal},
	}

	for _, count := range counts {
		var n int64
		if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+count.table).Scan(&n); err != nil {
			return err
		}
		count.gauge.Set(float64(n))
	}
	return nil
}
