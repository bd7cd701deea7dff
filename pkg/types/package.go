package types

import (
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/semver"
)

// PackageRef uniquely identifies a package. It is the store key and the
// name of the package's directory inside the store.
type PackageRef string

func (r PackageRef) String() string { return string(r) }

// DependencyType classifies a declared dependency
type DependencyType string

const (
	Build    DependencyType = "Build"
	Runtime  DependencyType = "Runtime"
	Optional DependencyType = "Optional"
)

// Enforced reports whether the dependency must be installed before the
// package that declares it. Optional dependencies are informational.
func (t DependencyType) Enforced() bool {
	return t == Build || t == Runtime
}

// ParseDependencyType accepts the type names case-insensitively
func ParseDependencyType(s string) (DependencyType, error) {
	switch strings.ToLower(s) {
	case "build":
		return Build, nil
	case "runtime":
		return Runtime, nil
	case "optional":
		return Optional, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown dependency type %q", s)
	}
}

// PackageDependency is a dependency edge declared by a package definition
type PackageDependency struct {
	Ref   PackageRef     `json:"ref"`
	Range semver.Matcher `json:"range"`
	Type  DependencyType `json:"type"`
}

// ParseDependency parses "ref@matcher". A missing "@matcher" means any
// version.
func ParseDependency(raw string, typ DependencyType) (PackageDependency, error) {
	name, matcher, found := strings.Cut(raw, "@")
	if name == "" {
		return PackageDependency{}, errors.Newf(errors.ErrInvalidInput, "dependency %q has no package name", raw)
	}
	if !found {
		matcher = "*"
	}

	m, err := semver.ParseMatcher(matcher)
	if err != nil {
		return PackageDependency{}, err
	}

	return PackageDependency{Ref: PackageRef(name), Range: m, Type: typ}, nil
}

func mustDependency(raw string, typ DependencyType) PackageDependency {
	dep, err := ParseDependency(raw, typ)
	if err != nil {
		panic(err)
	}
	return dep
}

// BuildDep declares a build dependency, e.g. BuildDep("gcc@*")
func BuildDep(raw string) PackageDependency { return mustDependency(raw, Build) }

// RuntimeDep declares a runtime dependency
func RuntimeDep(raw string) PackageDependency { return mustDependency(raw, Runtime) }

// OptionalDep declares an optional dependency
func OptionalDep(raw string) PackageDependency { return mustDependency(raw, Optional) }

// OutputLayout describes where things live once the source archive has been
// unpacked. ArchiveSubdir is relative to the work directory; the other
// directories are relative to ArchiveSubdir (and so to the store slot).
type OutputLayout struct {
	ArchiveSubdir string   `json:"archiveSubdir"`
	BinDirs       []string `json:"binDirs,omitempty"`
	LibDirs       []string `json:"libDirs,omitempty"`
	IncludeDirs   []string `json:"includeDirs,omitempty"`
}

// PackageDefinition is the authored, immutable description of a package.
// Install and Uninstall are optional; nil means no custom step.
type PackageDefinition struct {
	Ref          PackageRef
	DisplayName  string
	Description  string
	Provides     []string
	Version      semver.Version
	Dependencies []PackageDependency
	SourceURL    string
	Checksum     string // optional "sha256:<hex>" digest of the archive
	Output       OutputLayout

	Install   HookFunc
	Uninstall HookFunc
}

// EnforcedDependencies returns the Build and Runtime dependencies
func (d *PackageDefinition) EnforcedDependencies() []PackageDependency {
	var deps []PackageDependency
	for _, dep := range d.Dependencies {
		if dep.Type.Enforced() {
			deps = append(deps, dep)
		}
	}
	return deps
}
