package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveOperation("d", "create", StatusOK, time.Millisecond)
		m.AddBytesWritten("d", 10)
		m.AddBytesRead("d", 10)
		m.SetUsage("d", 64, 60, 1)
		m.ForgetDisk("d")
		m.SetDisks(1)
	})
}

func TestObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveOperation("main", "create", StatusOK, time.Millisecond)
	m.ObserveOperation("main", "create", StatusOK, time.Millisecond)
	m.ObserveOperation("main", "create", StatusInsufficientSpace, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("main", "create", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("main", "create", StatusInsufficientSpace)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.operationDuration))
}

func TestSetUsageAndForget(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.SetUsage("main", 64, 60, 1)
	m.SetUsage("scratch", 8, 8, 0)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.usedBlocks.WithLabelValues("main")))
	assert.Equal(t, 60.0, testutil.ToFloat64(m.freeBlocks.WithLabelValues("main")))

	m.ForgetDisk("main")
	assert.Equal(t, 1, testutil.CollectAndCount(m.freeBlocks))
	assert.Equal(t, 1, testutil.CollectAndCount(m.files))
}

func TestBytesCountersIgnoreEmpty(t *testing.T) {
	m := NewMetrics(nil)
	m.AddBytesWritten("main", 0)
	m.AddBytesWritten("main", 5)
	m.AddBytesRead("main", 3)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.bytesWritten.WithLabelValues("main")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.bytesRead.WithLabelValues("main")))
}

func TestRegistryExposition(t *testing.T) {
	reg := NewRegistry()
	m := NewMetrics(reg)
	m.SetDisks(2)
	m.SetUsage("main", 64, 64, 0)

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body := new(strings.Builder)
	_, err = io.Copy(body, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "indexfs_registry_disks 2")
	assert.Contains(t, body.String(), `indexfs_disk_total_blocks{disk="main"} 64`)
	assert.Contains(t, body.String(), "go_goroutines")
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
