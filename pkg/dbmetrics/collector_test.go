package dbmetrics

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeDB struct{ open int }

func (f *fakeDB) Stats() sql.DBStats {
	return sql.DBStats{OpenConnections: f.open}
}

type recordingSink struct {
	mu    sync.Mutex
	calls int
	last  sql.DBStats
}

func (s *recordingSink) SetDBStats(stats sql.DBStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = stats
}

func (s *recordingSink) snapshot() (int, sql.DBStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, s.last
}

func TestStart_CollectsUntilStopped(t *testing.T) {
	sink := &recordingSink{}
	stop := make(chan struct{})

	Start(&fakeDB{open: 4}, sink, 5*time.Millisecond, stop)

	assert.Eventually(t, func() bool {
		calls, _ := sink.snapshot()
		return calls >= 2
	}, time.Second, 5*time.Millisecond)

	close(stop)

	_, last := sink.snapshot()
	assert.Equal(t, 4, last.OpenConnections)
}
