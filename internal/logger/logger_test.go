package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			l, err := New(level, "production")
			require.NoError(t, err)

			lvl, err := zapcore.ParseLevel(level)
			require.NoError(t, err)
			require.True(t, l.Core().Enabled(lvl))
		})
	}
}

func TestNew_InfoDisablesDebug(t *testing.T) {
	l, err := New("info", "development")
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", "development")
	require.Error(t, err)
}
