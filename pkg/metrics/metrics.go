// Package metrics holds nox's Prometheus collectors and tracing helpers.
//
// nox is a short-lived CLI, so nothing is scraped: when metrics are enabled
// the registry is written to a node_exporter textfile at exit. Spans go to
// the global OpenTelemetry tracer provider, which is a no-op unless the
// embedding program installs one.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name
const Namespace = "nox"

// Result label values
const (
	ResultSuccess = "success"
	ResultNoop    = "noop"
	ResultError   = "error"
)

// Metrics is the set of collectors the orchestrator and fetcher report to
type Metrics struct {
	registry *prometheus.Registry

	installsTotal    *prometheus.CounterVec
	installDuration  *prometheus.HistogramVec
	uninstallsTotal  *prometheus.CounterVec
	downloadAttempts *prometheus.CounterVec
	downloadBytes    prometheus.Counter
}

// New registers a fresh set of collectors on their own registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		installsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "installs_total",
			Help:      "Package install operations by package and result",
		}, []string{"package", "result"}),

		installDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "install_duration_seconds",
			Help:      "Time spent installing a package, dependencies excluded",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"package"}),

		uninstallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "uninstalls_total",
			Help:      "Package uninstall operations by package and result",
		}, []string{"package", "result"}),

		downloadAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "download_attempts_total",
			Help:      "Archive download attempts by result",
		}, []string{"result"}),

		downloadBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "download_bytes_total",
			Help:      "Bytes written by successful archive downloads",
		}),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveInstall records the outcome of one install call
func (m *Metrics) ObserveInstall(pkg, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.installsTotal.WithLabelValues(pkg, result).Inc()
	if result == ResultSuccess {
		m.installDuration.WithLabelValues(pkg).Observe(elapsed.Seconds())
	}
}

// ObserveUninstall records the outcome of one uninstall call
func (m *Metrics) ObserveUninstall(pkg, result string) {
	if m == nil {
		return
	}
	m.uninstallsTotal.WithLabelValues(pkg, result).Inc()
}

// ObserveDownload records one download attempt
func (m *Metrics) ObserveDownload(result string, bytes int64) {
	if m == nil {
		return
	}
	m.downloadAttempts.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.downloadBytes.Add(float64(bytes))
	}
}

// WriteTextfile dumps the registry in the Prometheus text format, replacing
// path atomically
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write metrics to %s", path)
	}
	return nil
}
