// Package metrics exposes Prometheus instrumentation for simulated disks.
//
// A nil *Metrics is valid and records nothing, so services can be built
// without a registry in tests and in the CLI.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label names.
const (
	LabelDisk      = "disk"
	LabelOperation = "operation"
	LabelStatus    = "status"
)

// Status label values.
const (
	StatusOK                = "ok"
	StatusDuplicateName     = "duplicate_name"
	StatusInsufficientSpace = "insufficient_space"
	StatusNotFound          = "not_found"
	StatusInvalidInput      = "invalid_input"
	StatusError             = "error"
)

// Metrics holds the indexfs collectors.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesWritten      *prometheus.CounterVec
	bytesRead         *prometheus.CounterVec

	freeBlocks  *prometheus.GaugeVec
	usedBlocks  *prometheus.GaugeVec
	totalBlocks *prometheus.GaugeVec
	files       *prometheus.GaugeVec
	disks       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with registry.
// A nil registry creates unregistered collectors.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "indexfs",
				Subsystem: "disk",
				Name:      "operations_total",
				Help:      "Total number of disk operations by outcome",
			},
			[]string{LabelDisk, LabelOperation, LabelStatus},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "indexfs",
				Subsystem: "disk",
				Name:      "operation_duration_seconds",
				Help:      "Latency of disk operations",
				Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{LabelDisk, LabelOperation},
		),
		bytesWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "indexfs",
				Subsystem: "disk",
				Name:      "content_bytes_written_total",
				Help:      "Bytes of content stored by write operations",
			},
			[]string{LabelDisk},
		),
		bytesRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "indexfs",
				Subsystem: "disk",
				Name:      "content_bytes_read_total",
				Help:      "Bytes of content returned by read operations",
			},
			[]string{LabelDisk},
		),
		freeBlocks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "indexfs",
				Subsystem: "disk",
				Name:      "free_blocks",
				Help:      "Number of free blocks",
			},
			[]string{LabelDisk},
		),
		usedBlocks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "indexfs",
				Subsystem: "disk",
				Name:      "used_blocks",
				Help:      "Number of allocated blocks, index blocks included",
			},
			[]string{LabelDisk},
		),
		totalBlocks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "indexfs",
				Subsystem: "disk",
				Name:      "total_blocks",
				Help:      "Disk capacity in blocks",
			},
			[]string{LabelDisk},
		),
		files: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "indexfs",
				Subsystem: "disk",
				Name:      "files",
				Help:      "Number of files in the file table",
			},
			[]string{LabelDisk},
		),
		disks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "indexfs",
				Subsystem: "registry",
				Name:      "disks",
				Help:      "Number of registered disks",
			},
		),
	}

	if registry != nil {
		registry.MustRegister(
			m.operationsTotal,
			m.operationDuration,
			m.bytesWritten,
			m.bytesRead,
			m.freeBlocks,
			m.usedBlocks,
			m.totalBlocks,
			m.files,
			m.disks,
		)
	}

	return m
}

// ObserveOperation records one completed operation.
func (m *Metrics) ObserveOperation(disk, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(disk, operation, status).Inc()
	m.operationDuration.WithLabelValues(disk, operation).Observe(duration.Seconds())
}

func (m *Metrics) AddBytesWritten(disk string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bytesWritten.WithLabelValues(disk).Add(float64(n))
}

func (m *Metrics) AddBytesRead(disk string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bytesRead.WithLabelValues(disk).Add(float64(n))
}

// SetUsage publishes the block and file gauges for disk.
func (m *Metrics) SetUsage(disk string, total, free, files int) {
	if m == nil {
		return
	}
	m.totalBlocks.WithLabelValues(disk).Set(float64(total))
	m.freeBlocks.WithLabelValues(disk).Set(float64(free))
	m.usedBlocks.WithLabelValues(disk).Set(float64(total - free))
	m.files.WithLabelValues(disk).Set(float64(files))
}

// ForgetDisk drops every series labelled with disk.
func (m *Metrics) ForgetDisk(disk string) {
	if m == nil {
		return
	}
	match := prometheus.Labels{LabelDisk: disk}
	m.operationsTotal.DeletePartialMatch(match)
	m.operationDuration.DeletePartialMatch(match)
	m.bytesWritten.DeletePartialMatch(match)
	m.bytesRead.DeletePartialMatch(match)
	m.freeBlocks.DeleteLabelValues(disk)
	m.usedBlocks.DeleteLabelValues(disk)
	m.totalBlocks.DeleteLabelValues(disk)
	m.files.DeleteLabelValues(disk)
}

func (m *Metrics) SetDisks(n int) {
	if m == nil {
		return
	}
	m.disks.Set(float64(n))
}
