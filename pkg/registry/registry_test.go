// pkg/registry/registry_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test definition registration, shadowing, lookup and validation

package registry

import (
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/semver"
	"github.com/arthur-debert/nox/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func def(ref string, deps ...types.PackageDependency) *types.PackageDefinition {
	return &types.PackageDefinition{
		Ref:          types.PackageRef(ref),
		DisplayName:  ref,
		Version:      semver.MustParseVersion("1.0.0"),
		Dependencies: deps,
		SourceURL:    "https://example.com/" + ref + ".tar.gz",
		Output:       types.OutputLayout{ArchiveSubdir: ref + "-1.0.0", BinDirs: []string{"bin"}},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(def("cmake"), SourceBuiltin))

	got, err := reg.Lookup("cmake")
	require.NoError(t, err)
	assert.Equal(t, types.PackageRef("cmake"), got.Ref)
	assert.True(t, reg.Has("cmake"))
	assert.Equal(t, SourceBuiltin, reg.Source("cmake"))

	_, err = reg.Lookup("missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage))
	assert.Equal(t, "missing", errors.GetErrorDetails(err)["package"])
}

func TestRegister_Duplicates(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		second  string
		wantErr bool
	}{
		{name: "builtin_twice", first: SourceBuiltin, second: SourceBuiltin, wantErr: true},
		{name: "file_shadows_builtin", first: SourceBuiltin, second: "/cfg/packages/gcc.toml"},
		{name: "two_files", first: "/cfg/packages/a.toml", second: "/cfg/packages/b.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			require.NoError(t, reg.Register(def("gcc"), tt.first))

			err := reg.Register(def("gcc"), tt.second)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
				assert.Equal(t, tt.first, reg.Source("gcc"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.second, reg.Source("gcc"))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *types.PackageDefinition)
		code   errors.ErrorCode
	}{
		{name: "empty_ref", mutate: func(d *types.PackageDefinition) { d.Ref = "" }, code: errors.ErrInvalidInput},
		{name: "ref_with_slash", mutate: func(d *types.PackageDefinition) { d.Ref = "a/b" }, code: errors.ErrInvalidInput},
		{name: "hidden_ref", mutate: func(d *types.PackageDefinition) { d.Ref = ".tmp" }, code: errors.ErrInvalidInput},
		{name: "no_source", mutate: func(d *types.PackageDefinition) { d.SourceURL = "" }, code: errors.ErrInvalidInput},
		{name: "bad_checksum", mutate: func(d *types.PackageDefinition) { d.Checksum = "sha256:abc" }, code: errors.ErrInvalidInput},
		{name: "no_archive_dir", mutate: func(d *types.PackageDefinition) { d.Output.ArchiveSubdir = "" }, code: errors.ErrInvalidInput},
		{name: "escaping_bin", mutate: func(d *types.PackageDefinition) { d.Output.BinDirs = []string{"../../bin"} }, code: errors.ErrInvalidInput},
		{name: "absolute_lib", mutate: func(d *types.PackageDefinition) { d.Output.LibDirs = []string{"/usr/lib"} }, code: errors.ErrInvalidInput},
		{name: "self_dependency", mutate: func(d *types.PackageDefinition) {
			d.Dependencies = []types.PackageDependency{types.BuildDep(string(d.Ref) + "@*")}
		}, code: errors.ErrCyclicDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := def("zlib")
			tt.mutate(d)
			err := Validate(d)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code))
		})
	}

	assert.NoError(t, Validate(def("zlib", types.BuildDep("gcc@*"))))

	withSum := def("zlib")
	withSum.Checksum = "sha256:" + strings.Repeat("ab", 32)
	assert.NoError(t, Validate(withSum))
}

func TestList_SortedAndConcurrent(t *testing.T) {
	reg := New()
	var wg sync.WaitGroup
	for _, ref := range []string{"kotlin", "cmake", "jdk", "gcc"} {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			assert.NoError(t, reg.Register(def(ref), SourceBuiltin))
		}(ref)
	}
	wg.Wait()

	assert.Equal(t, []types.PackageRef{"cmake", "gcc", "jdk", "kotlin"}, reg.List())
	assert.Equal(t, 4, reg.Count())
}

func TestMustRegister_Panics(t *testing.T) {
	reg := New()
	MustRegister(reg, def("gcc"))
	assert.Panics(t, func() { MustRegister(reg, def("gcc")) })
}
