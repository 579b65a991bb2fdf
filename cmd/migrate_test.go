package cmd

import (
	"context"
	"strconv"
	"testing"

	"quiz_scoring_backend/internal/config"
	"quiz_scoring_backend/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func redisConfig(t *testing.T, mr *miniredis.Miniredis) *config.Config {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return &config.Config{Redis: config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}}
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestInvalidateQuestionCache(t *testing.T) {
	logs := observeLogs(t)
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("quiz:question:q1", "{}"))
	require.NoError(t, mr.Set("quiz:question:q2", "{}"))
	require.NoError(t, mr.Set("quiz:question:other", "{}"))

	invalidateQuestionCache(context.Background(), redisConfig(t, mr), []string{"q1", "q2"})

	assert.False(t, mr.Exists("quiz:question:q1"))
	assert.False(t, mr.Exists("quiz:question:q2"))
	assert.True(t, mr.Exists("quiz:question:other"))
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestInvalidateQuestionCacheRedisDownOnlyWarns(t *testing.T) {
	logs := observeLogs(t)
	mr := miniredis.RunT(t)
	cfg := redisConfig(t, mr)
	mr.Close()

	invalidateQuestionCache(context.Background(), cfg, []string{"q1"})

	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestInvalidateQuestionCacheDisabled(t *testing.T) {
	logs := observeLogs(t)
	invalidateQuestionCache(context.Background(), &config.Config{}, []string{"q1"})
	assert.Equal(t, 0, logs.Len())
}
