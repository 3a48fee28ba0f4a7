package database

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
)

// poolExhaustionRatio is the in-use share of MaxOpenConnections that triggers a warning
const poolExhaustionRatio = 0.8

// ConnectionPoolMonitor periodically inspects sql.DB stats and warns when the pool runs hot
type ConnectionPoolMonitor struct {
	sqlDB    *sql.DB
	logger   coreport.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(sqlDB *sql.DB, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		sqlDB:    sqlDB,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins monitoring the connection pool
func (m *ConnectionPoolMonitor) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.check()
			case <-m.stopChan:
				return
			}
		}
	}()
}

// Stop stops the monitoring; it is safe to call more than once
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// check logs a warning when in-use connections exceed the exhaustion ratio
func (m *ConnectionPoolMonitor) check() bool {
	stats := m.sqlDB.Stats()
	if stats.MaxOpenConnections <= 0 {
		return false
	}

	threshold := float64(stats.MaxOpenConnections) * poolExhaustionRatio
	if float64(stats.InUse) <= threshold {
		return false
	}

	m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
		"in_use":     stats.InUse,
		"max_open":   stats.MaxOpenConnections,
		"idle":       stats.Idle,
		"wait_count": stats.WaitCount,
		"wait_time":  stats.WaitDuration.String(),
	})
	return true
}

// RegisterPoolCollector exposes sql.DB pool stats on the given Prometheus registerer
func RegisterPoolCollector(reg prometheus.Registerer, sqlDB *sql.DB, dbName string) error {
	return reg.Register(collectors.NewDBStatsCollector(sqlDB, dbName))
}
