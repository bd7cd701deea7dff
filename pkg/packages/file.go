package packages

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/registry"
	"github.com/arthur-debert/nox/pkg/semver"
	"github.com/arthur-debert/nox/pkg/shell"
	"github.com/arthur-debert/nox/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a package definition
type File struct {
	Ref          string     `toml:"ref" yaml:"ref"`
	DisplayName  string     `toml:"display_name" yaml:"display_name"`
	Description  string     `toml:"description" yaml:"description"`
	Provides     []string   `toml:"provides" yaml:"provides"`
	Version      string     `toml:"version" yaml:"version"`
	SourceURL    string     `toml:"source_url" yaml:"source_url"`
	Checksum     string     `toml:"checksum" yaml:"checksum"`
	Dependencies FileDeps   `toml:"dependencies" yaml:"dependencies"`
	Output       FileOutput `toml:"output" yaml:"output"`
	Hooks        FileHooks  `toml:"hooks" yaml:"hooks"`
}

// FileDeps lists dependencies by type as "ref@matcher" strings
type FileDeps struct {
	Build    []string `toml:"build" yaml:"build"`
	Runtime  []string `toml:"runtime" yaml:"runtime"`
	Optional []string `toml:"optional" yaml:"optional"`
}

// FileOutput mirrors types.OutputLayout
type FileOutput struct {
	ArchiveSubdir string   `toml:"archive_subdir" yaml:"archive_subdir"`
	BinDirs       []string `toml:"bin_dirs" yaml:"bin_dirs"`
	LibDirs       []string `toml:"lib_dirs" yaml:"lib_dirs"`
	IncludeDirs   []string `toml:"include_dirs" yaml:"include_dirs"`
}

// FileHooks holds shell commands for the lifecycle hooks
type FileHooks struct {
	// Extract defaults to true
	Extract   *bool    `toml:"extract" yaml:"extract"`
	Install   []string `toml:"install" yaml:"install"`
	Uninstall []string `toml:"uninstall" yaml:"uninstall"`
}

// IsDefinitionFile reports whether name has a definition file extension
func IsDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFile reads and converts one definition file
func LoadFile(path string) (*types.PackageDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read package definition %s", path)
	}

	f, err := decode(path, data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse package definition %s", path).
			WithDetail("file", path)
	}

	def, err := f.Definition()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid package definition %s", path).
			WithDetail("file", path)
	}
	return def, nil
}

func decode(path string, data []byte) (File, error) {
	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err := dec.Decode(&f)
		return f, err
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err := dec.Decode(&f)
		return f, err
	default:
		return f, errors.Newf(errors.ErrInvalidInput, "unsupported definition file extension %q", filepath.Ext(path))
	}
}

// Definition converts the file into a package definition
func (f File) Definition() (*types.PackageDefinition, error) {
	version, err := semver.ParseVersion(f.Version)
	if err != nil {
		return nil, err
	}

	var deps []types.PackageDependency
	for _, group := range []struct {
		specs []string
		typ   types.DependencyType
	}{
		{f.Dependencies.Build, types.Build},
		{f.Dependencies.Runtime, types.Runtime},
		{f.Dependencies.Optional, types.Optional},
	} {
		for _, spec := range group.specs {
			dep, err := types.ParseDependency(spec, group.typ)
			if err != nil {
				return nil, err
			}
			deps = append(deps, dep)
		}
	}

	for _, command := range append(append([]string(nil), f.Hooks.Install...), f.Hooks.Uninstall...) {
		if err := shell.Validate(command); err != nil {
			return nil, err
		}
	}

	displayName := f.DisplayName
	if displayName == "" {
		displayName = f.Ref
	}

	def := &types.PackageDefinition{
		Ref:          types.PackageRef(f.Ref),
		DisplayName:  displayName,
		Description:  f.Description,
		Provides:     f.Provides,
		Version:      version,
		Dependencies: deps,
		SourceURL:    f.SourceURL,
		Checksum:     f.Checksum,
		Output: types.OutputLayout{
			ArchiveSubdir: f.Output.ArchiveSubdir,
			BinDirs:       f.Output.BinDirs,
			LibDirs:       f.Output.LibDirs,
			IncludeDirs:   f.Output.IncludeDirs,
		},
	}

	extract := f.Hooks.Extract == nil || *f.Hooks.Extract
	if len(f.Hooks.Install) > 0 || !extract {
		def.Install = commandHook(extract, f.Hooks.Install)
	}
	if len(f.Hooks.Uninstall) > 0 {
		def.Uninstall = commandHook(false, f.Hooks.Uninstall)
	}

	if err := registry.Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

// LoadDir registers every definition file in dir. A missing directory is
// not an error. Files are loaded in name order so duplicate errors are
// deterministic.
func LoadDir(reg *registry.Registry, dir string) error {
	logger := logging.GetLogger("packages")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", dir).Msg("No package definitions directory")
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && IsDefinitionFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		def, err := LoadFile(path)
		if err != nil {
			return err
		}
		if err := reg.Register(def, path); err != nil {
			return err
		}
		logger.Debug().Str("package", string(def.Ref)).Str("file", path).Msg("Loaded package definition")
	}
	return nil
}

// NewRegistry returns a registry with the built-ins plus the definitions
// found in dir
func NewRegistry(dir string) (*registry.Registry, error) {
	reg := registry.New()
	RegisterBuiltins(reg)
	if dir == "" {
		return reg, nil
	}
	if err := LoadDir(reg, dir); err != nil {
		return nil, err
	}
	return reg, nil
}
