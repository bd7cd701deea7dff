package shell

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/types"
	"mvdan.cc/sh/v3/syntax"
)

// Environment variables the manifest extends, one per directory group
const (
	PathVar    = "PATH"
	LibraryVar = "LD_LIBRARY_PATH"
	IncludeVar = "CPATH"
)

// GenerateManifest renders the path manifest for records, which must already
// be in the order they should appear. Each package gets one block: a comment
// header, then its bin, lib and include directories. Directories are
// shell-quoted; a directory that cannot be quoted fails the whole manifest.
func GenerateManifest(storeDir string, records []types.InstallRecord) (string, error) {
	var b strings.Builder
	b.WriteString("# Generated by nox. Do not edit; rewritten on every install and uninstall.\n\n")

	for _, rec := range records {
		fmt.Fprintf(&b, "# %s (%s)\n", strings.ReplaceAll(rec.DisplayName, "\n", " "), rec.Ref)
		groups := []struct {
			variable string
			dirs     []string
		}{
			{PathVar, rec.Output.BinDirs},
			{LibraryVar, rec.Output.LibDirs},
			{IncludeVar, rec.Output.IncludeDirs},
		}
		for _, g := range groups {
			if err := writeExports(&b, storeDir, rec.Ref, g.variable, g.dirs); err != nil {
				return "", err
			}
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func writeExports(b *strings.Builder, storeDir string, ref types.PackageRef, variable string, dirs []string) error {
	for _, dir := range dirs {
		full := filepath.Join(storeDir, string(ref), dir)
		quoted, err := syntax.Quote(full, syntax.LangPOSIX)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s into the path manifest", full).
				WithDetail("package", string(ref))
		}
		fmt.Fprintf(b, "export %s=\"${%s:+$%s:}\"%s\n", variable, variable, variable, quoted)
	}
	return nil
}
