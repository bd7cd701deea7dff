// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Isolate nox's directories and define installable test packages

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// Env is an isolated set of nox directories under a temp root
type Env struct {
	Root      string
	DataDir   string
	ConfigDir string
	StateDir  string
}

// Isolate points NOX_DATA_DIR, NOX_CONFIG_DIR and NOX_STATE_DIR at a fresh
// temp root and clears settings that would leak in from the caller's
// environment. Retries back off quickly so failure tests stay fast.
func Isolate(t *testing.T) *Env {
	t.Helper()
	root := t.TempDir()
	env := &Env{
		Root:      root,
		DataDir:   filepath.Join(root, "data"),
		ConfigDir: filepath.Join(root, "config"),
		StateDir:  filepath.Join(root, "state"),
	}
	t.Setenv("NOX_DATA_DIR", env.DataDir)
	t.Setenv("NOX_CONFIG_DIR", env.ConfigDir)
	t.Setenv("NOX_STATE_DIR", env.StateDir)
	t.Setenv("NOX_STORE_DIR", "")
	t.Setenv("NOX_FETCH_BACKOFF", "10ms")
	t.Setenv("NO_COLOR", "1")
	return env
}

// Package describes a test package. Deps is written verbatim under
// [dependencies], e.g. `runtime = ["demo@^1"]`.
type Package struct {
	Ref      string
	Version  string
	Deps     string
	Checksum string
}

// DefinePackage writes a tarball holding <ref>-<version>/bin/<ref> and a
// definition in the config packages directory that installs it. It returns
// the archive path.
func (e *Env) DefinePackage(t *testing.T, pkg Package) string {
	t.Helper()
	if pkg.Version == "" {
		pkg.Version = "1.0.0"
	}
	subdir := pkg.Ref + "-" + pkg.Version
	archive := filepath.Join(e.Root, "archives", pkg.Ref+".tar.gz")
	WriteTarGz(t, archive, []Entry{
		{Name: subdir + "/"},
		{Name: subdir + "/bin/"},
		{Name: subdir + "/bin/" + pkg.Ref, Body: "#!/bin/sh\necho " + pkg.Ref + "\n", Mode: 0755},
	})

	var b strings.Builder
	fmt.Fprintf(&b, "ref = %q\n", pkg.Ref)
	fmt.Fprintf(&b, "display_name = %q\n", "Demo "+pkg.Ref)
	fmt.Fprintf(&b, "description = \"A %s package used in tests\"\n", pkg.Ref)
	fmt.Fprintf(&b, "version = %q\n", pkg.Version)
	fmt.Fprintf(&b, "source_url = %q\n", archive)
	if pkg.Checksum != "" {
		fmt.Fprintf(&b, "checksum = %q\n", pkg.Checksum)
	}
	fmt.Fprintf(&b, "\n[dependencies]\n%s\n", pkg.Deps)
	fmt.Fprintf(&b, "\n[output]\narchive_subdir = %q\nbin_dirs = [\"bin\"]\n", subdir)

	CreateFile(t, filepath.Join(e.ConfigDir, "packages"), pkg.Ref+".toml", b.String())
	return archive
}
