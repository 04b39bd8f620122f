package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/logging"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Logging
		want    zapcore.Level
		wantErr bool
	}{
		{name: "json info", cfg: config.Logging{Level: "info", Format: "json"}, want: zapcore.InfoLevel},
		{name: "console debug", cfg: config.Logging{Level: "debug", Format: "console"}, want: zapcore.DebugLevel},
		{name: "bad level", cfg: config.Logging{Level: "loud", Format: "json"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := logging.New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, logger.Level())
		})
	}
}

func TestSetLevel(t *testing.T) {
	logger, err := logging.New(config.Logging{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.SetLevel("error")
	assert.Equal(t, zapcore.ErrorLevel, logger.Level())
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger.SetLevel("nonsense")
	assert.Equal(t, zapcore.ErrorLevel, logger.Level())
}
