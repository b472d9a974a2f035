package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/xmindstruct-go/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		verbose bool
		level   zapcore.Level
	}{
		{"default", config.LoggingConfig{}, false, zapcore.WarnLevel},
		{"json info", config.LoggingConfig{Level: "info", Format: "json"}, false, zapcore.InfoLevel},
		{"console error", config.LoggingConfig{Level: "error", Format: "console"}, false, zapcore.ErrorLevel},
		{"verbose wins", config.LoggingConfig{Level: "error"}, true, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.verbose)
			require.NoError(t, err)
			assert.Equal(t, tt.level, zapcore.LevelOf(logger.Core()))
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, false)
	assert.ErrorContains(t, err, "invalid log level")
}
