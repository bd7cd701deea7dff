// Package fetch downloads package source archives.
//
// Transport is delegated to viant/afs, so any URL scheme it knows works:
// http(s) and file out of the box, s3 and gs through the afsc drivers
// imported below. Plain paths are treated as local files.
package fetch

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/metrics"
	"github.com/viant/afs"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/viant/afs/http"
	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"
)

// Defaults used when the corresponding option is not given
const (
	DefaultAttempts   = 3
	DefaultRetryDelay = time.Second
)

// Fetcher downloads URLs into local directories with bounded retries
type Fetcher struct {
	fs         afs.Service
	attempts   int
	retryDelay time.Duration
	timeout    time.Duration
	metrics    *metrics.Metrics
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithAttempts sets how many times a download is tried before giving up
func WithAttempts(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.attempts = n
		}
	}
}

// WithRetryDelay sets the base delay between attempts; it doubles each retry
func WithRetryDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelay = d
	}
}

// WithTimeout bounds each individual attempt. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMetrics reports download attempts to m
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// New creates a Fetcher
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		fs:         afs.New(),
		attempts:   DefaultAttempts,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads rawURL into destDir and returns the local file path. The
// file is named after the last element of the URL path.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destDir string) (dest string, err error) {
	logger := logging.GetLogger("fetch").With().Str("url", rawURL).Logger()

	ctx, span := metrics.StartSpan(ctx, "fetch", attribute.String("url", rawURL))
	defer func() { metrics.EndSpan(span, err) }()

	source, name, err := normalize(rawURL)
	if err != nil {
		return "", err
	}
	dest = filepath.Join(destDir, name)

	var lastErr error
	delay := f.retryDelay
	for attempt := 1; attempt <= f.attempts; attempt++ {
		logger.Debug().Int("attempt", attempt).Str("dest", dest).Msg("Downloading")

		n, err := f.download(ctx, source, dest)
		if err == nil {
			f.metrics.ObserveDownload(metrics.ResultSuccess, n)
			logger.Info().Int64("bytes", n).Msg("Downloaded")
			return dest, nil
		}

		lastErr = err
		f.metrics.ObserveDownload(metrics.ResultError, 0)
		_ = os.Remove(dest)
		logger.Warn().Err(err).Int("attempt", attempt).Int("of", f.attempts).Msg("Download attempt failed")

		if attempt == f.attempts || ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", errors.Wrapf(lastErr, errors.ErrDownloadFailed, "failed to download %s", rawURL).
		WithDetail("url", rawURL).
		WithDetail("attempts", f.attempts)
}

func (f *Fetcher) download(ctx context.Context, source, dest string) (int64, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	reader, err := f.fs.OpenURL(ctx, source)
	if err != nil {
		return 0, err
	}
	defer func() { _ = reader.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, reader)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// normalize turns plain paths into file URLs and derives the file name
func normalize(rawURL string) (source, name string, err error) {
	if rawURL == "" {
		return "", "", errors.New(errors.ErrInvalidInput, "empty source URL")
	}

	if !strings.Contains(rawURL, "://") {
		abs, err := filepath.Abs(rawURL)
		if err != nil {
			return "", "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid source path %q", rawURL)
		}
		return "file://" + filepath.ToSlash(abs), filepath.Base(abs), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid source URL %q", rawURL)
	}
	name = path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", "", errors.Newf(errors.ErrInvalidInput, "source URL %q does not name a file", rawURL)
	}
	return rawURL, name, nil
}
