// pkg/types/types_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test dependency parsing, record snapshots and hook context helpers

package types_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/semver"
	"github.com/arthur-debert/nox/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDependency(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantRef   types.PackageRef
		wantRange string
		wantCode  errors.ErrorCode
	}{
		{name: "wildcard", raw: "jdk@*", wantRef: "jdk", wantRange: "*"},
		{name: "caret", raw: "gcc@^12", wantRef: "gcc", wantRange: "^12"},
		{name: "no_matcher_means_any", raw: "cmake", wantRef: "cmake", wantRange: "*"},
		{name: "empty_name", raw: "@1.0", wantCode: errors.ErrInvalidInput},
		{name: "bad_matcher", raw: "zlib@>1", wantCode: errors.ErrInvalidMatcherFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dep, err := types.ParseDependency(tt.raw, types.Runtime)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRef, dep.Ref)
			assert.Equal(t, tt.wantRange, dep.Range.String())
			assert.Equal(t, types.Runtime, dep.Type)
		})
	}
}

func TestParseDependencyType(t *testing.T) {
	typ, err := types.ParseDependencyType("BUILD")
	require.NoError(t, err)
	assert.Equal(t, types.Build, typ)

	_, err = types.ParseDependencyType("dev")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestEnforcedDependencies(t *testing.T) {
	def := &types.PackageDefinition{
		Ref: "zlib",
		Dependencies: []types.PackageDependency{
			types.BuildDep("gcc@*"),
			types.OptionalDep("docs@*"),
			types.RuntimeDep("libc@^2"),
		},
	}

	var refs []types.PackageRef
	for _, dep := range def.EnforcedDependencies() {
		refs = append(refs, dep.Ref)
	}
	assert.Equal(t, []types.PackageRef{"gcc", "libc"}, refs)
}

func TestNewInstallRecord(t *testing.T) {
	called := false
	def := &types.PackageDefinition{
		Ref:         "kotlin",
		DisplayName: "Kotlin Language",
		Version:     semver.MustParseVersion("1.7.21"),
		Dependencies: []types.PackageDependency{
			types.RuntimeDep("jdk@*"),
		},
		SourceURL: "https://example.invalid/kotlin.zip",
		Output:    types.OutputLayout{ArchiveSubdir: "kotlinc", BinDirs: []string{"bin"}},
		Install: func(ctx context.Context, hc *types.HookContext) error {
			called = true
			return nil
		},
	}
	when := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	rec := types.NewInstallRecord(def, types.Indirect, when)

	assert.Equal(t, types.PackageRef("kotlin"), rec.Ref)
	assert.Equal(t, types.Indirect, rec.InstallType)
	assert.Equal(t, when, rec.InstallDate)
	assert.True(t, rec.DependsOn("jdk"))
	assert.False(t, rec.DependsOn("gcc"))
	assert.False(t, called)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"installType":"Indirect"`)
	assert.Contains(t, string(data), `"version":"1.7.21"`)
	assert.Contains(t, string(data), `"range":"*"`)
}

func TestNewInstallRecord_NoDependenciesSerializeAsEmptyList(t *testing.T) {
	tests := []struct {
		name string
		deps []types.PackageDependency
	}{
		{name: "nil", deps: nil},
		{name: "empty", deps: []types.PackageDependency{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &types.PackageDefinition{Ref: "cmake", Dependencies: tt.deps}
			rec := types.NewInstallRecord(def, types.Direct, time.Now())

			assert.NotNil(t, rec.Dependencies)
			data, err := json.Marshal(rec)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"dependencies":[]`)
		})
	}
}

func TestNewInstallRecord_CopiesDependencies(t *testing.T) {
	def := &types.PackageDefinition{
		Ref:          "zlib",
		Dependencies: []types.PackageDependency{types.BuildDep("gcc@*")},
	}
	rec := types.NewInstallRecord(def, types.Indirect, time.Now())

	def.Dependencies[0].Ref = "clang"
	assert.Equal(t, types.PackageRef("gcc"), rec.Dependencies[0].Ref)
}

type recordingExtractor struct{ file, dest string }

func (r *recordingExtractor) Extract(_ context.Context, file, dest string) error {
	r.file, r.dest = file, dest
	return nil
}

type recordingShell struct{ dir, command string }

func (r *recordingShell) Run(_ context.Context, dir, command string) (string, error) {
	r.dir, r.command = dir, command
	return "ok", nil
}

func TestHookContext(t *testing.T) {
	ex := &recordingExtractor{}
	sh := &recordingShell{}
	hc := &types.HookContext{
		Ref:       "jdk",
		WorkDir:   "/tmp/nox-123",
		Archive:   "/tmp/nox-123/jdk.tar.gz",
		Shell:     sh,
		Extractor: ex,
	}

	require.NoError(t, hc.ExtractArchive(context.Background()))
	assert.Equal(t, "/tmp/nox-123/jdk.tar.gz", ex.file)
	assert.Equal(t, filepath.Clean("/tmp/nox-123"), ex.dest)

	require.NoError(t, hc.Extract(context.Background(), "inner.zip", "out"))
	assert.Equal(t, "/tmp/nox-123/inner.zip", ex.file)
	assert.Equal(t, "/tmp/nox-123/out", ex.dest)

	out, err := hc.Sh(context.Background(), "chmod +x bin/*")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "/tmp/nox-123", sh.dir)
	assert.Equal(t, "chmod +x bin/*", sh.command)
}
