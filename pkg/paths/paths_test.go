// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Environment variables
// PURPOSE: Test XDG resolution, overrides and store layout

package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		storeDir string
		envSetup map[string]string
		validate func(t *testing.T, p Paths)
	}{
		{
			name:     "explicit_store_dir",
			storeDir: "/tmp/nox-store",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/tmp/nox-store", p.StoreDir())
				assert.Equal(t, "/tmp/nox-store/state.json", p.StateFile())
				assert.Equal(t, "/tmp/nox-store/paths.sh", p.ManifestFile())
				assert.Equal(t, "/tmp/nox-store/gcc", p.PackageDir("gcc"))
			},
		},
		{
			name: "store_dir_from_env",
			envSetup: map[string]string{
				EnvNoxStoreDir: "/env/store",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/env/store", p.StoreDir())
			},
		},
		{
			name: "store_dir_defaults_under_data_dir",
			envSetup: map[string]string{
				EnvNoxDataDir: "/custom/data",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/custom/data", p.DataDir())
				assert.Equal(t, "/custom/data/store", p.StoreDir())
			},
		},
		{
			name: "custom_xdg_directories",
			envSetup: map[string]string{
				EnvNoxConfigDir: "/custom/config",
				EnvNoxStateDir:  "/custom/state",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/custom/config", p.ConfigDir())
				assert.Equal(t, "/custom/config/config.toml", p.ConfigFile())
				assert.Equal(t, "/custom/config/packages", p.PackagesDir())
				assert.Equal(t, "/custom/state/nox.log", p.LogFilePath())
				assert.Equal(t, "/custom/state/metrics.prom", p.MetricsFile())
			},
		},
		{
			name:     "expand_tilde_in_store_dir",
			storeDir: "~/tools",
			validate: func(t *testing.T, p Paths) {
				homeDir, _ := os.UserHomeDir()
				assert.Equal(t, filepath.Join(homeDir, "tools"), p.StoreDir())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{EnvNoxDataDir, EnvNoxConfigDir, EnvNoxStateDir, EnvNoxStoreDir} {
				t.Setenv(name, "")
			}
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.storeDir)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde_only", "~", homeDir},
		{"tilde_slash", "~/x/y", filepath.Join(homeDir, "x", "y")},
		{"other_user", "~bob/x", "~bob/x"},
		{"absolute", "/opt/x", "/opt/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestNormalizePath(t *testing.T) {
	p, err := New("/tmp/store")
	require.NoError(t, err)

	_, err = p.NormalizePath("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	got, err := p.NormalizePath("/a/b/../c/")
	require.NoError(t, err)
	assert.Equal(t, "/a/c", got)
}
