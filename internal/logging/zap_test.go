package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZap(zap.New(core))

	logger.Debug("window resliced", "page", 2)
	logger.Info("pager ready", "records", 15)
	logger.Warn("navigation rejected", "target", "next")
	logger.Error("hook failed", "hook", "OnPageChanged")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, "window resliced", entries[0].Message)
	require.Equal(t, int64(2), entries[0].ContextMap()["page"])

	require.Equal(t, zapcore.InfoLevel, entries[1].Level)
	require.Equal(t, zapcore.WarnLevel, entries[2].Level)
	require.Equal(t, "next", entries[2].ContextMap()["target"])
	require.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := NewZap(zap.New(core))

	logger.Debug("debug message")
	logger.Info("info message")
	require.Zero(t, logs.Len())

	logger.Warn("warn message")
	require.Equal(t, 1, logs.FilterMessage("warn message").Len())
}

func TestNewZap_Nil(t *testing.T) {
	logger := NewZap(nil)

	logger.Info("discarded")
	require.NoError(t, logger.Sync())
}
