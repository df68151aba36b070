package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ArchiveCounter reports the archived set total for the business gauge
type ArchiveCounter interface {
	Count(ctx context.Context) (int64, error)
}

// BusinessMetricsCollector collects business metrics periodically
type BusinessMetricsCollector struct {
	db       *gorm.DB
	archives ArchiveCounter
	metrics  *Metrics
	logger   *zap.Logger
	ticker   *time.Ticker
	done     chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, archives ArchiveCounter, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:       db,
		archives: archives,
		metrics:  metrics,
		logger:   logger,
		ticker:   time.NewTicker(60 * time.Second),
		done:     make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

// collect gathers business metrics
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Count live sets
	var liveCount int64
	if err := c.db.WithContext(ctx).Table("option_sets").Count(&liveCount).Error; err != nil {
		c.logger.Error("Failed to count option sets", zap.Error(err))
	} else {
		c.metrics.SetLiveSetsTotal(liveCount)
	}

	// Count archived sets
	if c.archives != nil {
		if archivedCount, err := c.archives.Count(ctx); err != nil {
			c.logger.Error("Failed to count archived sets", zap.Error(err))
		} else {
			c.metrics.SetArchivedSetsTotal(archivedCount)
		}
	}

	// Connection pool stats
	if sqlDB, err := c.db.DB(); err == nil {
		c.metrics.UpdateDBStats(sqlDB.Stats())
	}
}
