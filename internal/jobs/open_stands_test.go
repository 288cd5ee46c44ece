package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	count int
	err   error
	calls atomic.Int32
}

func (f *fakeCounter) CountOpen(context.Context) (int, error) {
	f.calls.Add(1)
	return f.count, f.err
}

func newTestRefresher(c openCounter) (*OpenStandsRefresher, prometheus.Gauge) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_open"})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOpenStandsRefresher(c, gauge, logger), gauge
}

func TestRefresh_SetsGauge(t *testing.T) {
	r, gauge := newTestRefresher(&fakeCounter{count: 7})

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, 7.0, testutil.ToFloat64(gauge))
}

func TestRefresh_ErrorKeepsPreviousValue(t *testing.T) {
	counter := &fakeCounter{count: 3}
	r, gauge := newTestRefresher(counter)
	require.NoError(t, r.Refresh(context.Background()))

	counter.err = errors.New("db down")
	assert.Error(t, r.Refresh(context.Background()))
	assert.Equal(t, 3.0, testutil.ToFloat64(gauge))
}

func TestStart_InvalidSchedule(t *testing.T) {
	r, _ := newTestRefresher(&fakeCounter{})
	assert.Error(t, r.Start(context.Background(), "every minute please"))
}

func TestStart_RefreshesImmediatelyAndOnSchedule(t *testing.T) {
	counter := &fakeCounter{count: 2}
	r, gauge := newTestRefresher(counter)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, r.Start(ctx, "@every 1s"))
	assert.Equal(t, 2.0, testutil.ToFloat64(gauge))

	assert.Eventually(t, func() bool { return counter.calls.Load() >= 2 }, 3*time.Second, 50*time.Millisecond)
	r.Stop()
}
