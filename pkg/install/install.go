package install

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/filesystem"
	"github.com/arthur-debert/nox/pkg/internal/hashutil"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/metrics"
	"github.com/arthur-debert/nox/pkg/semver"
	"github.com/arthur-debert/nox/pkg/store"
	"github.com/arthur-debert/nox/pkg/types"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// TempDirName is the directory inside the store that holds in-flight
// installs. Keeping it on the same filesystem as the store makes the final
// rename atomic.
const TempDirName = ".tmp"

// Options wires an Orchestrator to its collaborators
type Options struct {
	Registry  Resolver
	Store     *store.Store
	Fetcher   types.Fetcher
	Extractor types.Extractor
	Shell     types.ShellRunner
	// FS defaults to the OS filesystem
	FS       filesystem.FS
	StoreDir string
	// Metrics is optional
	Metrics *metrics.Metrics
	// Clock defaults to time.Now
	Clock func() time.Time
}

// UninstallOptions modifies Uninstall
type UninstallOptions struct {
	// Force removes the package even if installed packages depend on it
	Force bool
}

// Orchestrator installs and uninstalls packages
type Orchestrator struct {
	opts     Options
	installs singleflight.Group
	removals singleflight.Group
}

// New creates an Orchestrator
func New(opts Options) *Orchestrator {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Orchestrator{opts: opts}
}

// Resolve returns the packages an install of ref would touch, in install
// order, or the cycle that prevents installing it
func (o *Orchestrator) Resolve(ref types.PackageRef) ([]types.PackageRef, error) {
	return DependencyOrder(o.opts.Registry, ref)
}

// Install installs ref. transitive marks the request as coming from a
// dependent rather than the user, which records the package as Indirect.
func (o *Orchestrator) Install(ctx context.Context, ref types.PackageRef, transitive bool) error {
	present, err := o.opts.Store.Has(ref)
	if err != nil {
		return err
	}
	if !present {
		if _, err := DependencyOrder(o.opts.Registry, ref); err != nil {
			return err
		}
	}
	return o.install(ctx, ref, transitive, semver.Any)
}

func (o *Orchestrator) install(ctx context.Context, ref types.PackageRef, transitive bool, want semver.Matcher) error {
	logger := logging.GetLogger("install").With().Str("package", string(ref)).Logger()

	done, err := o.installed(ref, transitive, want)
	if err != nil {
		return err
	}
	if done {
		o.opts.Metrics.ObserveInstall(string(ref), metrics.ResultNoop, 0)
		return nil
	}

	def, err := o.opts.Registry.Lookup(ref)
	if err != nil {
		o.opts.Metrics.ObserveInstall(string(ref), metrics.ResultError, 0)
		return err
	}
	if !want.Matches(def.Version) {
		return versionConflict(ref, def.Version, want, "available")
	}

	// Concurrent requests for the same ref share one install
	_, err, shared := o.installs.Do(string(ref), func() (interface{}, error) {
		if present, err := o.opts.Store.Has(ref); err != nil || present {
			return nil, err
		}
		return nil, o.installNew(ctx, def, transitive)
	})
	if err != nil {
		return err
	}
	if shared {
		logger.Debug().Msg("Joined in-flight install")
	}

	_, err = o.installed(ref, transitive, want)
	return err
}

// installed handles the already-present case: it checks the version and
// promotes Indirect to Direct for direct requests. It reports whether the
// package is present.
func (o *Orchestrator) installed(ref types.PackageRef, transitive bool, want semver.Matcher) (bool, error) {
	rec, err := o.opts.Store.Get(ref)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if !want.Matches(rec.Version) {
		return true, versionConflict(ref, rec.Version, want, "installed")
	}

	if transitive || rec.InstallType == types.Direct {
		return true, nil
	}

	err = o.opts.Store.Update(ref, func(r *types.InstallRecord) error {
		r.InstallType = types.Direct
		return nil
	})
	if err != nil {
		return true, err
	}
	logger := logging.GetLogger("install")
	logger.Info().Str("package", string(ref)).Msg("Promoted to direct install")
	return true, nil
}

func (o *Orchestrator) installNew(ctx context.Context, def *types.PackageDefinition, transitive bool) (err error) {
	ref := def.Ref
	logger := logging.GetLogger("install").With().Str("package", string(ref)).Logger()

	ctx, span := metrics.StartSpan(ctx, "install",
		attribute.String("package", string(ref)),
		attribute.Bool("transitive", transitive))
	defer func() { metrics.EndSpan(span, err) }()

	if err := o.installDependencies(ctx, def); err != nil {
		o.opts.Metrics.ObserveInstall(string(ref), metrics.ResultError, 0)
		return err
	}

	done := logging.TrackOperation(logger, "install")
	defer func() { done(err) }()
	start := time.Now()

	if err := o.unpackAndRelocate(ctx, def); err != nil {
		o.opts.Metrics.ObserveInstall(string(ref), metrics.ResultError, time.Since(start))
		return err
	}

	installType := types.Direct
	if transitive {
		installType = types.Indirect
	}
	if err := o.opts.Store.Set(ref, types.NewInstallRecord(def, installType, o.opts.Clock())); err != nil {
		o.opts.Metrics.ObserveInstall(string(ref), metrics.ResultError, time.Since(start))
		return err
	}

	o.opts.Metrics.ObserveInstall(string(ref), metrics.ResultSuccess, time.Since(start))
	logger.Info().Str("type", string(installType)).Str("version", def.Version.String()).Msg("Installed")
	return nil
}

// installDependencies installs the Build and Runtime dependencies of def
// concurrently and waits for all of them. A failed dependency does not
// cancel its siblings: they may be shared with other in-flight installs.
func (o *Orchestrator) installDependencies(ctx context.Context, def *types.PackageDefinition) error {
	deps := def.EnforcedDependencies()
	if len(deps) == 0 {
		return nil
	}

	var g errgroup.Group
	for _, dep := range deps {
		g.Go(func() error {
			if err := o.install(ctx, dep.Ref, true, dep.Range); err != nil {
				return errors.Wrapf(err, errors.GetErrorCode(err), "dependency %s of %s failed", dep.Ref, def.Ref).
					WithDetail("package", string(def.Ref)).
					WithDetail("dependency", string(dep.Ref))
			}
			return nil
		})
	}
	return g.Wait()
}

// unpackAndRelocate runs the fetch, hook and rename sequence inside a
// scoped temporary directory
func (o *Orchestrator) unpackAndRelocate(ctx context.Context, def *types.PackageDefinition) error {
	fs := o.opts.FS
	tmpRoot := filepath.Join(o.opts.StoreDir, TempDirName)
	if err := fs.MkdirAll(tmpRoot, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", tmpRoot)
	}
	workDir, err := fs.MkdirTemp(tmpRoot, string(def.Ref)+"-")
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create working directory in %s", tmpRoot)
	}
	defer func() {
		if err := fs.RemoveAll(workDir); err != nil {
			logger := logging.GetLogger("install")
			logger.Warn().Err(err).Str("dir", workDir).Msg("Failed to clean up working directory")
		}
	}()

	archive, err := o.opts.Fetcher.Fetch(ctx, def.SourceURL, workDir)
	if err != nil {
		return err
	}
	if def.Checksum != "" {
		if err := hashutil.VerifyFileChecksum(archive, def.Checksum); err != nil {
			return err
		}
	}

	output := filepath.Join(workDir, def.Output.ArchiveSubdir)
	dest := filepath.Join(o.opts.StoreDir, string(def.Ref))

	hc := &types.HookContext{
		Ref:       def.Ref,
		WorkDir:   workDir,
		Archive:   archive,
		Dest:      dest,
		Shell:     o.opts.Shell,
		Extractor: o.opts.Extractor,
	}
	if def.Install != nil {
		err = def.Install(ctx, hc)
	} else {
		err = o.opts.Extractor.Extract(ctx, archive, workDir)
	}
	if err != nil {
		return err
	}

	info, err := fs.Stat(output)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrExtractFailed, "expected output directory %s was not produced", def.Output.ArchiveSubdir).
			WithDetail("package", string(def.Ref)).
			WithDetail("dir", output)
	}

	if err := fs.RemoveAll(dest); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove previous %s", dest)
	}
	if err := fs.Rename(output, dest); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move %s into the store", def.Ref).
			WithDetail("from", output).
			WithDetail("to", dest)
	}
	return nil
}

// Uninstall removes ref. It is a no-op when ref is not installed.
func (o *Orchestrator) Uninstall(ctx context.Context, ref types.PackageRef, opts UninstallOptions) error {
	key := string(ref)
	if opts.Force {
		key += "\x00force"
	}
	_, err, _ := o.removals.Do(key, func() (interface{}, error) {
		return nil, o.uninstall(ctx, ref, opts)
	})
	return err
}

func (o *Orchestrator) uninstall(ctx context.Context, ref types.PackageRef, opts UninstallOptions) (err error) {
	logger := logging.GetLogger("install").With().Str("package", string(ref)).Logger()

	present, err := o.opts.Store.Has(ref)
	if err != nil {
		return err
	}
	if !present {
		logger.Debug().Msg("Not installed, nothing to uninstall")
		o.opts.Metrics.ObserveUninstall(string(ref), metrics.ResultNoop)
		return nil
	}

	ctx, span := metrics.StartSpan(ctx, "uninstall", attribute.String("package", string(ref)))
	defer func() {
		metrics.EndSpan(span, err)
		if err != nil {
			o.opts.Metrics.ObserveUninstall(string(ref), metrics.ResultError)
		}
	}()

	def, err := o.opts.Registry.Lookup(ref)
	if err != nil {
		return err
	}

	dependents, err := o.opts.Store.Dependents(ref)
	if err != nil {
		return err
	}
	if len(dependents) > 0 {
		if !opts.Force {
			names := make([]string, len(dependents))
			for i, d := range dependents {
				names[i] = string(d)
			}
			return errors.Newf(errors.ErrHasDependents, "%s is required by %s", ref, strings.Join(names, ", ")).
				WithDetail("package", string(ref)).
				WithDetail("dependents", dependents)
		}
		logger.Warn().Interface("dependents", dependents).Msg("Forcing uninstall of a package with dependents")
	}

	done := logging.TrackOperation(logger, "uninstall")
	defer func() { done(err) }()

	dest := filepath.Join(o.opts.StoreDir, string(ref))
	if def.Uninstall != nil {
		hc := &types.HookContext{
			Ref:       ref,
			WorkDir:   dest,
			Dest:      dest,
			Shell:     o.opts.Shell,
			Extractor: o.opts.Extractor,
		}
		if err := def.Uninstall(ctx, hc); err != nil {
			return err
		}
	}

	if err := o.opts.FS.RemoveAll(dest); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", dest)
	}
	if err := o.opts.Store.Delete(ref); err != nil {
		return err
	}

	o.opts.Metrics.ObserveUninstall(string(ref), metrics.ResultSuccess)
	logger.Info().Msg("Uninstalled")
	return nil
}

func versionConflict(ref types.PackageRef, have semver.Version, want semver.Matcher, which string) error {
	return errors.Newf(errors.ErrVersionConflict, "%s %s version %s does not satisfy %s", which, ref, have, want).
		WithDetail("package", string(ref)).
		WithDetail(which, have.String()).
		WithDetail("requested", want.String())
}
