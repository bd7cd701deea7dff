package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// Entry is one member of a test archive. A trailing slash in Name makes a
// directory, a non-empty Link makes a symlink and a non-empty HardLink makes
// a hard link to that archive path. Typeflag, when set, overrides the tar
// entry type.
type Entry struct {
	Name     string
	Body     string
	Mode     int64
	Link     string
	HardLink string
	Typeflag byte
}

// CreateFile writes content to dir/name, creating parent directories
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// CreateDir creates parent/name
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()
	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755))
	return path
}

// WriteTarGz writes a gzip-compressed tarball holding entries to path
func WriteTarGz(t *testing.T, path string, entries []Entry) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	writeTar(t, gz, entries)
	require.NoError(t, gz.Close())
	writeArchive(t, path, buf.Bytes())
}

// WriteTarXz writes an xz-compressed tarball holding entries to path
func WriteTarXz(t *testing.T, path string, entries []Entry) {
	t.Helper()
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	writeTar(t, xw, entries)
	require.NoError(t, xw.Close())
	writeArchive(t, path, buf.Bytes())
}

func writeTar(t *testing.T, w io.Writer, entries []Entry) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: e.Mode, Size: int64(len(e.Body)), Typeflag: tar.TypeReg}
		if hdr.Mode == 0 {
			hdr.Mode = 0644
		}
		switch {
		case e.Typeflag != 0:
			hdr.Typeflag = e.Typeflag
			hdr.Size = 0
		case e.Link != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.Link
			hdr.Size = 0
		case e.HardLink != "":
			hdr.Typeflag = tar.TypeLink
			hdr.Linkname = e.HardLink
			hdr.Size = 0
		case len(e.Name) > 0 && e.Name[len(e.Name)-1] == '/':
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0755
			hdr.Size = 0
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.Body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
}

func writeArchive(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// WriteZip writes a zip archive holding entries to path. Links are ignored.
func WriteZip(t *testing.T, path string, entries []Entry) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.Name, Method: zip.Deflate}
		if e.Mode != 0 {
			hdr.SetMode(os.FileMode(e.Mode))
		}
		w, err := zw.CreateHeader(hdr)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.Body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	writeArchive(t, path, buf.Bytes())
}
