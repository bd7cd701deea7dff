// pkg/metrics/metrics_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test collector updates and textfile output

package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveInstall(t *testing.T) {
	m := New()

	m.ObserveInstall("gcc", ResultSuccess, 2*time.Second)
	m.ObserveInstall("gcc", ResultNoop, 0)
	m.ObserveInstall("gcc", ResultError, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.installsTotal.WithLabelValues("gcc", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.installsTotal.WithLabelValues("gcc", ResultNoop)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.installsTotal.WithLabelValues("gcc", ResultError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.installDuration))
}

func TestObserveDownload(t *testing.T) {
	m := New()

	m.ObserveDownload(ResultError, 0)
	m.ObserveDownload(ResultSuccess, 2048)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.downloadAttempts.WithLabelValues(ResultError)))
	assert.Equal(t, 2048.0, testutil.ToFloat64(m.downloadBytes))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveInstall("gcc", ResultSuccess, time.Second)
		m.ObserveUninstall("gcc", ResultSuccess)
		m.ObserveDownload(ResultSuccess, 1)
	})
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveUninstall("jdk", ResultSuccess)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `nox_uninstalls_total{package="jdk",result="success"} 1`)
}

func TestSpans(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "install")
	require.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		EndSpan(span, errors.New(errors.ErrInternal, "boom"))
	})
}
