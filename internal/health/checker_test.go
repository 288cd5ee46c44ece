package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"streetbite/internal/health"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestChecker(p health.Pinger) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return health.NewChecker(p, logger, reg), reg
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c, _ := newTestChecker(&mockPinger{err: errors.New("db down")})

	result := c.Liveness(context.Background())
	assert.True(t, result.Up())
	assert.Nil(t, result.Checks)
}

func TestReadiness_PostgresUp(t *testing.T) {
	c, reg := newTestChecker(&mockPinger{})

	result := c.Readiness(context.Background())
	assert.True(t, result.Up())
	require.Contains(t, result.Checks, "postgres")
	assert.Equal(t, "up", result.Checks["postgres"].Status)

	count, err := testutil.GatherAndCount(reg, "streetbite_health_check_up")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReadiness_PostgresDown(t *testing.T) {
	c, _ := newTestChecker(&mockPinger{err: errors.New("connection refused: password=secret")})

	result := c.Readiness(context.Background())
	assert.False(t, result.Up())
	assert.Equal(t, "down", result.Checks["postgres"].Status)
	assert.NotContains(t, result.Checks["postgres"].Error, "secret")
}
