package types

import (
	"context"
	"path/filepath"
)

// Fetcher downloads a URL into a directory and returns the local file path
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string) (string, error)
}

// Extractor unpacks an archive into a directory
type Extractor interface {
	Extract(ctx context.Context, file, destDir string) error
}

// ShellRunner runs a command string in a directory with the path manifest
// sourced, returning the captured output
type ShellRunner interface {
	Run(ctx context.Context, dir, command string) (string, error)
}

// HookFunc is a package lifecycle hook
type HookFunc func(ctx context.Context, hc *HookContext) error

// HookContext is what a lifecycle hook gets to work with. WorkDir is the
// scoped temporary directory during install and the store slot during
// uninstall.
type HookContext struct {
	Ref     PackageRef
	WorkDir string
	// Archive is the fetched source archive; empty during uninstall
	Archive string
	// Dest is the package's final slot inside the store
	Dest string

	Shell     ShellRunner
	Extractor Extractor
}

// Sh runs command inside WorkDir
func (hc *HookContext) Sh(ctx context.Context, command string) (string, error) {
	return hc.Shell.Run(ctx, hc.WorkDir, command)
}

// Extract unpacks file into destDir; relative paths resolve against WorkDir
func (hc *HookContext) Extract(ctx context.Context, file, destDir string) error {
	return hc.Extractor.Extract(ctx, hc.resolve(file), hc.resolve(destDir))
}

// ExtractArchive unpacks the fetched source archive into WorkDir
func (hc *HookContext) ExtractArchive(ctx context.Context) error {
	return hc.Extract(ctx, hc.Archive, ".")
}

func (hc *HookContext) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(hc.WorkDir, p)
}
