// pkg/filesystem/fs_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dirs) and afero memory filesystem
// PURPOSE: Verify both FS implementations behave alike for store operations

package filesystem_test

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/nox/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func implementations(t *testing.T) map[string]struct {
	fs   filesystem.FS
	root string
} {
	t.Helper()
	return map[string]struct {
		fs   filesystem.FS
		root string
	}{
		"os":     {fs: filesystem.NewOS(), root: t.TempDir()},
		"memory": {fs: filesystem.NewMemory(), root: "/work"},
	}
}

func TestFS_WriteReadRename(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			fsys := impl.fs
			dir := filepath.Join(impl.root, "store")
			require.NoError(t, fsys.MkdirAll(dir, 0755))

			tmp := filepath.Join(dir, "state.json.tmp")
			final := filepath.Join(dir, "state.json")
			require.NoError(t, fsys.WriteFile(tmp, []byte("{}\n"), 0644))
			require.NoError(t, fsys.Rename(tmp, final))

			data, err := fsys.ReadFile(final)
			require.NoError(t, err)
			assert.Equal(t, "{}\n", string(data))

			_, err = fsys.Stat(tmp)
			assert.ErrorIs(t, err, fs.ErrNotExist)
		})
	}
}

func TestFS_MkdirTempAndRemoveAll(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			fsys := impl.fs
			require.NoError(t, fsys.MkdirAll(impl.root, 0755))

			tmp, err := fsys.MkdirTemp(impl.root, "nox-")
			require.NoError(t, err)
			require.NoError(t, fsys.WriteFile(filepath.Join(tmp, "a"), []byte("a"), 0644))

			entries, err := fsys.ReadDir(tmp)
			require.NoError(t, err)
			assert.Len(t, entries, 1)

			require.NoError(t, fsys.RemoveAll(tmp))
			_, err = fsys.Stat(tmp)
			assert.ErrorIs(t, err, fs.ErrNotExist)
		})
	}
}

func TestFS_ReadFileOnDirectory(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/d", 0755))

	_, err := fsys.ReadFile("/d")
	assert.Error(t, err)
}

func TestNewAferoFS_ReadOnlyView(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/store/state.json", []byte("{}"), 0644))
	fsys := filesystem.NewAferoFS(afero.NewReadOnlyFs(mem))

	data, err := fsys.ReadFile("/store/state.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	assert.Error(t, fsys.WriteFile("/store/state.json", []byte("[]"), 0644))
}
