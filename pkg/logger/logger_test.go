package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GlebRadaev/scratchmart/internal/config"
)

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	tests := []struct {
		name           string
		config         *config.Config
		expectedError  bool
		expectedLogLvl zapcore.Level
	}{
		{name: "Info console", config: &config.Config{LogLvl: "info"}, expectedLogLvl: zapcore.InfoLevel},
		{name: "Warn json", config: &config.Config{LogLvl: "warn", LogFormat: "json"}, expectedLogLvl: zapcore.WarnLevel},
		{name: "Error console", config: &config.Config{LogLvl: "error", LogFormat: "console"}, expectedLogLvl: zapcore.ErrorLevel},
		{name: "Debug", config: &config.Config{LogLvl: "debug"}, expectedLogLvl: zapcore.DebugLevel},
		{name: "Invalid log level", config: &config.Config{LogLvl: "invalid"}, expectedError: true},
		{name: "Invalid log format", config: &config.Config{LogLvl: "info", LogFormat: "xml"}, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(tt.config)

			if tt.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, zap.L().Core().Enabled(tt.expectedLogLvl))
			if tt.expectedLogLvl > zapcore.DebugLevel {
				assert.False(t, zap.L().Core().Enabled(tt.expectedLogLvl-1))
			}
		})
	}
}
