package install

import (
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/types"
)

// Resolver looks up package definitions by ref
type Resolver interface {
	Lookup(ref types.PackageRef) (*types.PackageDefinition, error)
}

// CycleError reports a dependency cycle, listing the refs along it with the
// first ref repeated at the end
type CycleError struct {
	Cycle []types.PackageRef
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, ref := range e.Cycle {
		parts[i] = string(ref)
	}
	return "dependency cycle detected: " + strings.Join(parts, " -> ")
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// DependencyOrder walks the Build and Runtime dependencies reachable from
// root and returns them in install order, dependencies first and root last.
// Dependencies the resolver does not know are listed but not descended
// into; installing them reports the error.
func DependencyOrder(reg Resolver, root types.PackageRef) ([]types.PackageRef, error) {
	if _, err := reg.Lookup(root); err != nil {
		return nil, err
	}

	state := make(map[types.PackageRef]visitState)
	var order []types.PackageRef
	var stack []types.PackageRef

	var visit func(ref types.PackageRef) error
	visit = func(ref types.PackageRef) error {
		switch state[ref] {
		case visited:
			return nil
		case visiting:
			start := 0
			for i, r := range stack {
				if r == ref {
					start = i
					break
				}
			}
			cycle := append(append([]types.PackageRef(nil), stack[start:]...), ref)
			return errors.Wrapf(&CycleError{Cycle: cycle}, errors.ErrCyclicDependency,
				"cannot install %s", root).WithDetail("cycle", cycle)
		}

		state[ref] = visiting
		stack = append(stack, ref)

		if def, err := reg.Lookup(ref); err == nil {
			for _, dep := range def.EnforcedDependencies() {
				if err := visit(dep.Ref); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[ref] = visited
		order = append(order, ref)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return order, nil
}
