package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/pribylovaa/go-board/internal/counter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestAuthCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AuthSucceeded("login")
	m.AuthSucceeded("login")
	m.AuthFailed("refresh_not_found")

	require.Equal(t, 2.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailures.WithLabelValues("refresh_not_found")))
}

func TestObserveFold(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFold(counter.FoldResult{Folded: 3, Discarded: 1}, 10*time.Millisecond, nil)
	m.ObserveFold(counter.FoldResult{Failed: 2}, time.Millisecond, errors.New("boom"))

	require.Equal(t, 1.0, testutil.ToFloat64(m.Folds.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Folds.WithLabelValues("error")))
	require.Equal(t, 3.0, testutil.ToFloat64(m.FoldEntities.WithLabelValues("folded")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.FoldEntities.WithLabelValues("discarded")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.FoldEntities.WithLabelValues("failed")))
	require.Equal(t, 1, testutil.CollectAndCount(m.FoldDuration))
}

func TestObserveSweepAndHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSweep(4)
	m.ObserveHTTP("POST", "/auth/login", "200", time.Millisecond)

	require.Equal(t, 4.0, testutil.ToFloat64(m.SessionsSwept))
	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/auth/login", "200")))

	n, err := testutil.GatherAndCount(reg, "board_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNew_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	require.Panics(t, func() { New(reg) })
}
