package legalai

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelStats_EmptySnapshot(t *testing.T) {
	s := NewModelStats(time.Hour)
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Count)
	assert.Zero(t, snap.AvgMs)
}

func TestModelStats_Aggregates(t *testing.T) {
	s := NewModelStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	assert.Equal(t, 4, snap.Count)
	assert.EqualValues(t, 100, snap.MinMs)
	assert.EqualValues(t, 400, snap.MaxMs)
	assert.InDelta(t, 250, snap.AvgMs, 1e-9)
	assert.InDelta(t, 250, snap.P50Ms, 1e-9)
}

func TestModelStats_NegativeClampedToZero(t *testing.T) {
	s := NewModelStats(time.Hour)
	s.Record(-5)
	snap := s.Snapshot()
	require.Equal(t, 1, snap.Count)
	assert.EqualValues(t, 0, snap.MinMs)
}

func TestModelStats_PrunesExpiredSamples(t *testing.T) {
	s := NewModelStats(10 * time.Millisecond)
	s.Record(100)
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, 0, s.Snapshot().Count)
}

func TestModelStats_ConcurrentRecords(t *testing.T) {
	s := NewModelStats(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Record(int64(j))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400, s.Snapshot().Count)
}

func TestPercentile(t *testing.T) {
	sorted := []int64{10, 20, 30, 40, 50}
	assert.InDelta(t, 30, percentile(sorted, 50), 1e-9)
	assert.InDelta(t, 10, percentile(sorted, 0), 1e-9)
	assert.InDelta(t, 50, percentile(sorted, 100), 1e-9)
	assert.InDelta(t, 48, percentile(sorted, 95), 1e-9)
	assert.Zero(t, percentile(nil, 50))
}
