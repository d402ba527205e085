package pipeline

import (
	"fmt"
	"sync"
	"time"
)

// RunStats tracks statistics about one prediction run
type RunStats struct {
	mu          sync.RWMutex
	StartTime   time.Time
	Duration    time.Duration
	TotalGames  int
	Predicted   int
	Skipped     int
	FetchErrors int
}

// NewRunStats creates a new stats tracker
func NewRunStats() *RunStats {
	return &RunStats{
		StartTime: time.Now(),
	}
}

// Reset resets all stats
func (s *RunStats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.StartTime = time.Now()
	s.Duration = 0
	s.TotalGames = 0
	s.Predicted = 0
	s.Skipped = 0
	s.FetchErrors = 0
}

// SetTotalGames records the number of scheduled games
func (s *RunStats) SetTotalGames(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalGames = n
}

// RecordPredicted increments the emitted record count
func (s *RunStats) RecordPredicted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Predicted++
}

// RecordSkipped increments the skipped game count
func (s *RunStats) RecordSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
}

// RecordFetchError increments the upstream fetch error count
func (s *RunStats) RecordFetchError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FetchErrors++
}

// SetDuration records the total run duration
func (s *RunStats) SetDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Duration = d
}

// Snapshot returns a copy of the current counters
func (s *RunStats) Snapshot() (totalGames, predicted, skipped, fetchErrors int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.TotalGames, s.Predicted, s.Skipped, s.FetchErrors
}

// String returns a formatted string representation of the run stats
func (s *RunStats) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coverage := float64(0)
	if s.TotalGames > 0 {
		coverage = float64(s.Predicted) / float64(s.TotalGames) * 100
	}

	return fmt.Sprintf(
		"RunStats{Games=%d, Predicted=%d (%.1f%%), Skipped=%d, FetchErrors=%d, Duration=%v}",
		s.TotalGames,
		s.Predicted,
		coverage,
		s.Skipped,
		s.FetchErrors,
		s.Duration,
	)
}
