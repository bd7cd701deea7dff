package commands

import (
	"context"

	"github.com/arthur-debert/nox/pkg/config"
	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/planner"
	"github.com/arthur-debert/nox/pkg/types"
)

// SyncOptions configures Sync
type SyncOptions struct {
	// ConfigPath is the sync configuration listing the desired packages
	ConfigPath string
	// User selects a [users.<name>] section
	User   string
	DryRun bool
}

// Install installs refs as Direct packages
func Install(ctx context.Context, env *Environment, refs []types.PackageRef) (*RunResult, error) {
	if len(refs) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no packages given")
	}
	return execute(ctx, env, "install", planner.InstallPlan(refs), false)
}

// Uninstall removes refs. Packages other installed packages depend on are
// kept unless force is set or the dependents are removed too.
func Uninstall(ctx context.Context, env *Environment, refs []types.PackageRef, force bool) (*RunResult, error) {
	if len(refs) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no packages given")
	}
	records, err := env.Store.Entries()
	if err != nil {
		return nil, err
	}
	return execute(ctx, env, "uninstall", planner.UninstallPlan(refs, records, force), false)
}

// Sync reconciles the store with the packages a sync configuration asks for
func Sync(ctx context.Context, env *Environment, opts SyncOptions) (*RunResult, error) {
	logger := logging.GetLogger("commands")

	configPath, err := env.Paths.NormalizePath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	sf, err := config.LoadSyncFile(configPath)
	if err != nil {
		return nil, err
	}
	desired, err := sf.Desired(opts.User)
	if err != nil {
		return nil, err
	}

	records, err := env.Store.Entries()
	if err != nil {
		return nil, err
	}

	plan := planner.NewPlan(desired, records)
	logger.Info().
		Str("config", configPath).
		Str("run", plan.ID).
		Int("desired", len(desired)).
		Int("actions", len(plan.Actions)).
		Msg("Computed sync plan")

	return execute(ctx, env, "sync", plan, opts.DryRun)
}

func execute(ctx context.Context, env *Environment, command string, plan planner.Plan, dryRun bool) (*RunResult, error) {
	result := &RunResult{Command: command, DryRun: dryRun, Plan: plan}
	if dryRun {
		return result, nil
	}

	res, err := planner.Execute(ctx, env.Orchestrator, plan, planner.ExecuteOptions{Jobs: env.Config.Sync.Jobs})
	result.Result = res
	return result, err
}
