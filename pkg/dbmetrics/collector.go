// Package dbmetrics периодически снимает статистику пула соединений *sql.DB
package dbmetrics

import (
	"database/sql"
	"time"
)

// DefaultInterval период сбора статистики пула
const DefaultInterval = 15 * time.Second

// StatsSource источник статистики пула (*sql.DB)
type StatsSource interface {
	Stats() sql.DBStats
}

// StatsSink получатель статистики (*metrics.Metrics)
type StatsSink interface {
	SetDBStats(stats sql.DBStats)
}

// Start запускает сбор статистики в отдельной горутине до закрытия stop
func Start(db StatsSource, sink StatsSink, interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		sink.SetDBStats(db.Stats())
		for {
			select {
			case <-ticker.C:
				sink.SetDBStats(db.Stats())
			case <-stop:
				return
			}
		}
	}()
}
