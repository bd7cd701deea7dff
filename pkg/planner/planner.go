package planner

import (
	"context"
	stderrors "errors"
	"sort"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/install"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ActionKind is what an Action does
type ActionKind string

const (
	Install   ActionKind = "install"
	Uninstall ActionKind = "uninstall"
)

// Action is one step of a Plan
type Action struct {
	Kind ActionKind       `json:"kind" yaml:"kind"`
	Ref  types.PackageRef `json:"ref" yaml:"ref"`
	// Force is set on uninstalls whose dependents are all being removed too
	Force bool `json:"force,omitempty" yaml:"force,omitempty"`
}

// Plan is the ordered list of actions a sync will run
type Plan struct {
	ID      string   `json:"id" yaml:"id"`
	Actions []Action `json:"actions" yaml:"actions"`
}

// Count returns how many actions of kind the plan holds
func (p Plan) Count(kind ActionKind) int {
	n := 0
	for _, a := range p.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// NewPlan computes the actions that reconcile records with desired.
// Uninstalls come first, sorted by ref, then installs in desired order with
// duplicates dropped.
func NewPlan(desired []types.PackageRef, records map[types.PackageRef]types.InstallRecord) Plan {
	wanted := make(map[types.PackageRef]bool, len(desired))
	var installs []types.PackageRef
	for _, ref := range desired {
		if ref == "" || wanted[ref] {
			continue
		}
		wanted[ref] = true
		installs = append(installs, ref)
	}

	removing := make(map[types.PackageRef]bool)
	var uninstalls []types.PackageRef
	for ref, rec := range records {
		if rec.InstallType == types.Direct && !wanted[ref] {
			removing[ref] = true
			uninstalls = append(uninstalls, ref)
		}
	}
	sort.Slice(uninstalls, func(i, j int) bool { return uninstalls[i] < uninstalls[j] })

	plan := Plan{ID: uuid.NewString()}
	for _, ref := range uninstalls {
		plan.Actions = append(plan.Actions, Action{
			Kind:  Uninstall,
			Ref:   ref,
			Force: dependentsRemoved(ref, records, removing),
		})
	}
	for _, ref := range installs {
		plan.Actions = append(plan.Actions, Action{Kind: Install, Ref: ref})
	}
	return plan
}

// InstallPlan installs refs directly, in order, without duplicates
func InstallPlan(refs []types.PackageRef) Plan {
	plan := Plan{ID: uuid.NewString()}
	seen := make(map[types.PackageRef]bool, len(refs))
	for _, ref := range refs {
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		plan.Actions = append(plan.Actions, Action{Kind: Install, Ref: ref})
	}
	return plan
}

// UninstallPlan removes refs. Each removal is forced when force is set or
// when every installed dependent is part of the same plan.
func UninstallPlan(refs []types.PackageRef, records map[types.PackageRef]types.InstallRecord, force bool) Plan {
	removing := make(map[types.PackageRef]bool, len(refs))
	var ordered []types.PackageRef
	for _, ref := range refs {
		if ref == "" || removing[ref] {
			continue
		}
		removing[ref] = true
		ordered = append(ordered, ref)
	}

	plan := Plan{ID: uuid.NewString()}
	for _, ref := range ordered {
		plan.Actions = append(plan.Actions, Action{
			Kind:  Uninstall,
			Ref:   ref,
			Force: force || dependentsRemoved(ref, records, removing),
		})
	}
	return plan
}

// dependentsRemoved reports whether every installed dependent of ref is
// also scheduled for removal
func dependentsRemoved(ref types.PackageRef, records map[types.PackageRef]types.InstallRecord, removing map[types.PackageRef]bool) bool {
	for dependent, rec := range records {
		if rec.DependsOn(ref) && !removing[dependent] {
			return false
		}
	}
	return true
}

// Executor runs individual actions
type Executor interface {
	Install(ctx context.Context, ref types.PackageRef, transitive bool) error
	Uninstall(ctx context.Context, ref types.PackageRef, opts install.UninstallOptions) error
}

// Status is the outcome of one action
type Status string

const (
	Done   Status = "done"
	Kept   Status = "kept"
	Failed Status = "failed"
)

// Outcome pairs an action with what happened to it
type Outcome struct {
	Action Action `json:"action" yaml:"action"`
	Status Status `json:"status" yaml:"status"`
	Err    error  `json:"-" yaml:"-"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result is the outcome of a whole plan, in plan order
type Result struct {
	ID       string    `json:"id" yaml:"id"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
}

// Failed returns the outcomes that failed
func (r Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == Failed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Count returns how many outcomes have status
func (r Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// ExecuteOptions tunes Execute
type ExecuteOptions struct {
	// Jobs caps how many actions run at once; zero or less means no cap
	Jobs int
}

// Execute runs the actions of plan concurrently in two waves: every
// uninstall, then every install, so an install never races the removal of a
// package it depends on. A failing action does not cancel the others; all
// failures are joined into the returned error. An uninstall refused because
// other packages still depend on the package is reported as Kept, not as a
// failure.
func Execute(ctx context.Context, exec Executor, plan Plan, opts ExecuteOptions) (Result, error) {
	logger := logging.GetLogger("planner").With().Str("run", plan.ID).Logger()
	logger.Info().
		Int("install", plan.Count(Install)).
		Int("uninstall", plan.Count(Uninstall)).
		Msg("Executing sync plan")

	result := Result{ID: plan.ID, Outcomes: make([]Outcome, len(plan.Actions))}

	for _, kind := range []ActionKind{Uninstall, Install} {
		var g errgroup.Group
		if opts.Jobs > 0 {
			g.SetLimit(opts.Jobs)
		}
		for i, action := range plan.Actions {
			if action.Kind != kind {
				continue
			}
			g.Go(func() error {
				result.Outcomes[i] = run(ctx, exec, action)
				return nil
			})
		}
		_ = g.Wait()
	}

	var errs []error
	for _, o := range result.Outcomes {
		switch o.Status {
		case Failed:
			logger.Error().Err(o.Err).Str("package", string(o.Action.Ref)).Str("action", string(o.Action.Kind)).Msg("Action failed")
			errs = append(errs, o.Err)
		case Kept:
			logger.Warn().Str("package", string(o.Action.Ref)).Msg("Still required by other packages, kept")
		}
	}
	if len(errs) > 0 {
		return result, errors.Wrapf(stderrors.Join(errs...), errors.GetErrorCode(errs[0]),
			"%d of %d sync actions failed", len(errs), len(plan.Actions)).
			WithDetail("run", plan.ID)
	}
	return result, nil
}

func run(ctx context.Context, exec Executor, action Action) Outcome {
	var err error
	switch action.Kind {
	case Install:
		err = exec.Install(ctx, action.Ref, false)
	case Uninstall:
		err = exec.Uninstall(ctx, action.Ref, install.UninstallOptions{Force: action.Force})
		if errors.IsErrorCode(err, errors.ErrHasDependents) {
			return Outcome{Action: action, Status: Kept}
		}
	default:
		err = errors.Newf(errors.ErrInternal, "unknown action kind %q", action.Kind)
	}
	if err != nil {
		return Outcome{Action: action, Status: Failed, Err: err, Error: err.Error()}
	}
	return Outcome{Action: action, Status: Done}
}
