// pkg/install/graph_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test dependency ordering and cycle reporting

package install

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/registry"
	"github.com/arthur-debert/nox/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, defs ...*types.PackageDefinition) *registry.Registry {
	t.Helper()
	reg := registry.New()
	for _, def := range defs {
		require.NoError(t, reg.Register(def, registry.SourceBuiltin))
	}
	return reg
}

func TestDependencyOrder(t *testing.T) {
	reg := newRegistry(t,
		pkgDef("gcc", "12.2.0"),
		pkgDef("cmake", "3.25.0"),
		pkgDef("zlib", "1.2.13", types.BuildDep("gcc@*"), types.BuildDep("cmake@*")),
		pkgDef("jdk", "17.0.5", types.RuntimeDep("zlib@*")),
		pkgDef("kotlin", "1.7.21", types.RuntimeDep("jdk@*"), types.OptionalDep("gradle@*")),
	)

	order, err := DependencyOrder(reg, "kotlin")
	require.NoError(t, err)
	assert.Equal(t, []types.PackageRef{"gcc", "cmake", "zlib", "jdk", "kotlin"}, order)

	order, err = DependencyOrder(reg, "gcc")
	require.NoError(t, err)
	assert.Equal(t, []types.PackageRef{"gcc"}, order)
}

func TestDependencyOrder_Diamond(t *testing.T) {
	reg := newRegistry(t,
		pkgDef("base", "1.0.0"),
		pkgDef("left", "1.0.0", types.BuildDep("base@*")),
		pkgDef("right", "1.0.0", types.BuildDep("base@*")),
		pkgDef("top", "1.0.0", types.BuildDep("left@*"), types.BuildDep("right@*")),
	)

	order, err := DependencyOrder(reg, "top")
	require.NoError(t, err)
	assert.Equal(t, []types.PackageRef{"base", "left", "right", "top"}, order)
}

func TestDependencyOrder_UnknownDependencyListed(t *testing.T) {
	reg := newRegistry(t, pkgDef("zlib", "1.2.13", types.BuildDep("gcc@*")))

	order, err := DependencyOrder(reg, "zlib")
	require.NoError(t, err)
	assert.Equal(t, []types.PackageRef{"gcc", "zlib"}, order)

	_, err = DependencyOrder(reg, "gcc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage))
}

func TestDependencyOrder_Cycle(t *testing.T) {
	reg := newRegistry(t,
		pkgDef("entry", "1.0.0", types.BuildDep("a@*")),
		pkgDef("a", "1.0.0", types.BuildDep("b@*")),
		pkgDef("b", "1.0.0", types.BuildDep("a@*")),
	)

	_, err := DependencyOrder(reg, "entry")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCyclicDependency))

	var cycleErr *CycleError
	require.True(t, stderrors.As(err, &cycleErr))
	assert.Equal(t, []types.PackageRef{"a", "b", "a"}, cycleErr.Cycle)
}
