package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRunStatsAccounting tests counter updates and reset
func TestRunStatsAccounting(t *testing.T) {
	stats := NewRunStats()

	stats.SetTotalGames(3)
	stats.RecordPredicted()
	stats.RecordPredicted()
	stats.RecordSkipped()
	stats.RecordFetchError()
	stats.SetDuration(2 * time.Second)

	totalGames, predicted, skipped, fetchErrors := stats.Snapshot()
	assert.Equal(t, 3, totalGames)
	assert.Equal(t, 2, predicted)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, fetchErrors)

	stats.Reset()
	totalGames, predicted, skipped, fetchErrors = stats.Snapshot()
	assert.Equal(t, 0, totalGames)
	assert.Equal(t, 0, predicted)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 0, fetchErrors)
}

// TestRunStatsString tests the formatted summary
func TestRunStatsString(t *testing.T) {
	stats := NewRunStats()
	stats.SetTotalGames(4)
	stats.RecordPredicted()
	stats.RecordSkipped()

	s := stats.String()
	assert.Contains(t, s, "Games=4")
	assert.Contains(t, s, "Predicted=1")
	assert.Contains(t, s, "Skipped=1")
}
