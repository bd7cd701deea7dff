package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs to FS. Both the real and the in-memory
// filesystem go through it, so tests exercise the same code paths as
// production.
type aferoFS struct {
	afero.Fs
}

// NewOS returns the operating system filesystem
func NewOS() FS {
	return aferoFS{afero.NewOsFs()}
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() FS {
	return aferoFS{afero.NewMemMapFs()}
}

// NewAferoFS wraps any afero filesystem, e.g. a read-only or base-path view
func NewAferoFS(base afero.Fs) FS {
	return aferoFS{base}
}

// ReadFile rejects directories explicitly; afero's memory filesystem would
// otherwise return an empty read
func (a aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.Fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.Fs, name)
}

func (a aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.Fs, name, data, perm)
}

func (a aferoFS) MkdirTemp(dir, pattern string) (string, error) {
	return afero.TempDir(a.Fs, dir, pattern)
}

func (a aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.Fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}
