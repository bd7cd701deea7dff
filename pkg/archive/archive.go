// Package archive unpacks package source archives.
//
// Zip archives and gzip or xz compressed tarballs are all read in-process,
// and every entry goes through the same traversal checks.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/ulikunitz/xz"
)

// Format is a supported archive format
type Format string

const (
	Zip   Format = "zip"
	TarGz Format = "tar.gz"
	TarXz Format = "tar.xz"
)

var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", TarGz},
	{".tgz", TarGz},
	{".tar.xz", TarXz},
	{".txz", TarXz},
	{".zip", Zip},
}

// DetectFormat picks the format from the file name
func DetectFormat(file string) (Format, error) {
	lower := strings.ToLower(file)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.format, nil
		}
	}
	return "", errors.Newf(errors.ErrUnsupportedArchiveFormat, "unsupported archive format: %s", filepath.Base(file)).
		WithDetail("file", file)
}

// Extractor unpacks archives into directories
type Extractor struct{}

// New creates an Extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract unpacks file into destDir, creating it if needed
func (e *Extractor) Extract(ctx context.Context, file, destDir string) error {
	format, err := DetectFormat(file)
	if err != nil {
		return err
	}

	logger := logging.GetLogger("archive")
	logger.Debug().Str("file", file).Str("dest", destDir).Str("format", string(format)).Msg("Extracting")

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", destDir)
	}

	switch format {
	case Zip:
		err = extractZip(file, destDir)
	default:
		err = extractTarball(ctx, file, format, destDir)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractFailed, "failed to extract %s", filepath.Base(file)).
			WithDetail("file", file)
	}
	return nil
}

// safeJoin resolves name inside destDir and refuses entries that escape it
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("illegal path in archive: %s", name)
	}
	return target, nil
}

func extractZip(file, destDir string) (err error) {
	r, err := zip.OpenReader(file)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, f := range r.File {
		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := writeZipEntry(f, target); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return nil
}

func writeZipEntry(f *zip.File, target string) (err error) {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	return writeFile(target, rc, f.Mode().Perm())
}

func extractTarball(ctx context.Context, file string, format Format, destDir string) (err error) {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var r io.Reader
	switch format {
	case TarGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer func() { _ = gz.Close() }()
		r = gz
	case TarXz:
		xr, err := xz.NewReader(f)
		if err != nil {
			return err
		}
		r = xr
	default:
		return fmt.Errorf("not a tarball format: %s", format)
	}
	return extractTar(ctx, r, destDir)
}

// extractTar unpacks a tar stream. Entry types a toolchain cannot do
// without (files, directories, symbolic and hard links) are created; any
// other type fails the extraction.
func extractTar(ctx context.Context, r io.Reader, destDir string) error {
	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := writeFile(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return fmt.Errorf("%s: %w", hdr.Name, err)
			}
		case tar.TypeSymlink:
			if filepath.IsAbs(hdr.Linkname) {
				return fmt.Errorf("illegal absolute symlink in archive: %s -> %s", hdr.Name, hdr.Linkname)
			}
			if _, err := safeJoin(destDir, filepath.Join(filepath.Dir(hdr.Name), hdr.Linkname)); err != nil {
				return err
			}
			if err := replaceWith(target, func() error { return os.Symlink(hdr.Linkname, target) }); err != nil {
				return err
			}
		case tar.TypeLink:
			// hard link names are relative to the archive root
			source, err := safeJoin(destDir, hdr.Linkname)
			if err != nil {
				return err
			}
			if err := replaceWith(target, func() error { return os.Link(source, target) }); err != nil {
				return fmt.Errorf("%s: %w", hdr.Name, err)
			}
		case tar.TypeXGlobalHeader:
		default:
			return fmt.Errorf("unsupported entry type %q in archive: %s", hdr.Typeflag, hdr.Name)
		}
	}
}

// replaceWith creates the parent of target, removes whatever target is now
// and calls create
func replaceWith(target string, create func() error) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return create()
}

func writeFile(target string, r io.Reader, perm os.FileMode) (err error) {
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, r)
	return err
}
