package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	ctx := context.Background()

	dev := NewLogger(&Config{AppEnv: "development"})
	assert.True(t, dev.Enabled(ctx, slog.LevelDebug), "development keeps debug on")

	prod := NewLogger(&Config{AppEnv: "production", LogFormat: "json"})
	assert.False(t, prod.Enabled(ctx, slog.LevelDebug), "production mutes debug")
	assert.True(t, prod.Enabled(ctx, slog.LevelInfo))
}
