package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLoggerParsesLevels tests that valid levels are applied
func TestNewLoggerParsesLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewLogger(tt.level)
			require.NotNil(t, log)
			assert.Equal(t, tt.expected, log.GetLevel())
		})
	}
}

// TestNewLoggerInvalidLevelDefaultsToInfo tests the fallback level
func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("verbose")
	require.NotNil(t, log)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
