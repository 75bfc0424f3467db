package logger_test

import (
	"context"
	"testing"

	"calculator/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_FallsBackToDefault(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	got := logger.Get(context.Background())
	require.NotNil(t, got)
}

func TestWithLogger_RoundTrip(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := logger.WithLogger(context.Background(), l)
	require.Same(t, l, logger.Get(ctx))
}

func TestWithFields_AttachesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("userID", "u-1"))
	logger.Info(ctx, "hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "hello", entries[0].Message)
	require.Equal(t, "u-1", entries[0].ContextMap()["userID"])
}

func TestLevels_RespectCore(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Debug(ctx, "dropped")
	logger.Info(ctx, "dropped too")
	logger.Warn(ctx, "kept")
	logger.Error(ctx, "kept too")

	require.Len(t, logs.All(), 2)
}
