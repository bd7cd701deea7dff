package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/internal/hashutil"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/types"
)

// SourceBuiltin marks definitions compiled into nox
const SourceBuiltin = "builtin"

// Registry is a thread-safe set of package definitions keyed by ref
type Registry struct {
	mu      sync.RWMutex
	defs    map[types.PackageRef]*types.PackageDefinition
	sources map[types.PackageRef]string
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{
		defs:    make(map[types.PackageRef]*types.PackageDefinition),
		sources: make(map[types.PackageRef]string),
	}
}

// Register adds def, recording where it came from. Registering a ref twice
// fails unless the existing definition is a built-in, which the new one
// then shadows.
func (r *Registry) Register(def *types.PackageDefinition, source string) error {
	if err := Validate(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.sources[def.Ref]; exists {
		if existing != SourceBuiltin || source == SourceBuiltin {
			return errors.Newf(errors.ErrAlreadyExists, "package '%s' is already defined by %s", def.Ref, existing).
				WithDetail("package", string(def.Ref))
		}
		logger := logging.GetLogger("registry")
		logger.Debug().
			Str("package", string(def.Ref)).
			Str("source", source).
			Msg("Definition file shadows built-in package")
	}

	r.defs[def.Ref] = def
	r.sources[def.Ref] = source
	return nil
}

// Lookup returns the definition for ref or an UNKNOWN_PACKAGE error
func (r *Registry) Lookup(ref types.PackageRef) (*types.PackageDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.defs[ref]
	if !exists {
		return nil, errors.Newf(errors.ErrUnknownPackage, "unknown package '%s'", ref).
			WithDetail("package", string(ref))
	}
	return def, nil
}

// Has checks if ref is defined
func (r *Registry) Has(ref types.PackageRef) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.defs[ref]
	return exists
}

// Source returns where ref's definition came from, or "" if unknown
func (r *Registry) Source(ref types.PackageRef) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sources[ref]
}

// List returns all defined refs in sorted order
func (r *Registry) List() []types.PackageRef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	refs := make([]types.PackageRef, 0, len(r.defs))
	for ref := range r.defs {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs
}

// Count returns the number of definitions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.defs)
}

// MustRegister registers a built-in definition and panics if that fails.
// Built-ins are compiled in, so a failure is a programming error.
func MustRegister(r *Registry, def *types.PackageDefinition) {
	if err := r.Register(def, SourceBuiltin); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", def.Ref, err))
	}
}

// Validate checks the parts of a definition the orchestrator relies on
func Validate(def *types.PackageDefinition) error {
	if def == nil || def.Ref == "" {
		return errors.New(errors.ErrInvalidInput, "package definition has no ref")
	}
	ref := string(def.Ref)
	if strings.ContainsAny(ref, `/\@ `) || strings.HasPrefix(ref, ".") {
		return errors.Newf(errors.ErrInvalidInput, "package ref %q must be a plain name", ref)
	}
	if def.SourceURL == "" {
		return errors.Newf(errors.ErrInvalidInput, "package '%s' has no source URL", ref)
	}
	if def.Checksum != "" {
		if _, err := hashutil.Normalize(def.Checksum); err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "package '%s' has an invalid checksum", ref)
		}
	}
	if def.Output.ArchiveSubdir == "" {
		return errors.Newf(errors.ErrInvalidInput, "package '%s' does not name its archive directory", ref)
	}
	layoutDirs := append([]string{def.Output.ArchiveSubdir}, def.Output.BinDirs...)
	layoutDirs = append(layoutDirs, def.Output.LibDirs...)
	layoutDirs = append(layoutDirs, def.Output.IncludeDirs...)
	for _, dir := range layoutDirs {
		clean := filepath.Clean(dir)
		if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
			return errors.Newf(errors.ErrInvalidInput, "package '%s' output path %q escapes its directory", ref, dir)
		}
	}
	for _, dep := range def.Dependencies {
		if dep.Ref == def.Ref {
			return errors.Newf(errors.ErrCyclicDependency, "package '%s' depends on itself", ref)
		}
	}
	return nil
}
