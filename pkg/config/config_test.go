// pkg/config/config_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Temp directories, environment variables
// PURPOSE: Test settings layering and sync configuration selection

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/nox/pkg/config"
	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	cfg, err := config.LoadConfiguration(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Fetch.Retries)
	assert.Equal(t, time.Second, cfg.Fetch.Backoff)
	assert.Equal(t, 30*time.Minute, cfg.Fetch.Timeout)
	assert.Empty(t, cfg.Store.Dir)
	assert.Equal(t, 0, cfg.Sync.Jobs)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfiguration_Layering(t *testing.T) {
	path := writeFile(t, "config.toml", `
[fetch]
retries = 5
backoff = "2s"

[store]
dir = "/opt/nox"
`)
	t.Setenv("NOX_FETCH_BACKOFF", "250ms")
	t.Setenv("NOX_SYNC_JOBS", "4")

	cfg, err := config.LoadConfiguration(path, map[string]interface{}{
		"metrics.enabled": true,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Fetch.Retries, "file overrides defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.Fetch.Backoff, "env overrides file")
	assert.Equal(t, "/opt/nox", cfg.Store.Dir)
	assert.Equal(t, 4, cfg.Sync.Jobs)
	assert.True(t, cfg.Metrics.Enabled, "overrides apply last")
	assert.Equal(t, 30*time.Minute, cfg.Fetch.Timeout, "untouched default kept")
}

func TestLoadConfiguration_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "fetch:\n  retries: 7\nsync:\n  jobs: 2\n")

	cfg, err := config.LoadConfiguration(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Fetch.Retries)
	assert.Equal(t, 2, cfg.Sync.Jobs)
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode errors.ErrorCode
	}{
		{
			name:     "malformed_toml",
			file:     "config.toml",
			content:  "[fetch\nretries = ",
			wantCode: errors.ErrConfigParse,
		},
		{
			name:     "unsupported_extension",
			file:     "config.ini",
			content:  "retries=3",
			wantCode: errors.ErrConfigLoad,
		},
		{
			name:     "zero_retries",
			file:     "config.toml",
			content:  "[fetch]\nretries = 0\n",
			wantCode: errors.ErrConfigValid,
		},
		{
			name:     "negative_jobs",
			file:     "config.toml",
			content:  "[sync]\njobs = -1\n",
			wantCode: errors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := config.LoadConfiguration(path, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))
		})
	}
}

func TestGenerateConfigContent(t *testing.T) {
	content := config.GenerateConfigContent()

	assert.Contains(t, content, "[fetch]")
	assert.Contains(t, content, "# retries = 3  # NOX_FETCH_RETRIES\n")
	assert.Contains(t, content, "# jobs = 0  # NOX_SYNC_JOBS\n")
	assert.NotContains(t, content, "\nretries = 3")

	// The generated file must load to the same settings as no file at all
	path := writeFile(t, "config.toml", content)
	cfg, err := config.LoadConfiguration(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Fetch.Retries)
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "NOX_METRICS_FILE", config.EnvVar("metrics.file"))
	t.Setenv(config.EnvVar("sync.jobs"), "4")
	cfg, err := config.LoadConfiguration(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Sync.Jobs)
}

func TestSyncFile_Desired(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		user     string
		want     []types.PackageRef
		wantCode errors.ErrorCode
	}{
		{
			name:    "top_level_toml",
			file:    "nox.toml",
			content: "packages = [\"jdk\", \"kotlin\"]\n",
			want:    []types.PackageRef{"jdk", "kotlin"},
		},
		{
			name:    "top_level_yaml",
			file:    "nox.yaml",
			content: "packages:\n  - gcc\n  - cmake\n",
			want:    []types.PackageRef{"gcc", "cmake"},
		},
		{
			name:    "empty_list_removes_everything",
			file:    "nox.toml",
			content: "packages = []\n",
			want:    []types.PackageRef{},
		},
		{
			name: "named_user",
			file: "nox.toml",
			content: `
packages = ["gcc"]

[users.alice]
packages = ["jdk"]

[users.bob]
packages = ["zlib", "cmake"]
`,
			user: "bob",
			want: []types.PackageRef{"zlib", "cmake"},
		},
		{
			name: "first_user_by_name",
			file: "nox.yml",
			content: `
users:
  zed:
    packages: [gcc]
  amy:
    packages: [kotlin]
`,
			want: []types.PackageRef{"kotlin"},
		},
		{
			name:     "unknown_user",
			file:     "nox.toml",
			content:  "packages = [\"gcc\"]\n",
			user:     "carol",
			wantCode: errors.ErrConfigValid,
		},
		{
			name:     "nothing_listed",
			file:     "nox.toml",
			content:  "# empty\n",
			wantCode: errors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, err := config.LoadSyncFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			got, err := sf.Desired(tt.user)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSyncFile_Errors(t *testing.T) {
	_, err := config.LoadSyncFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigLoad, errors.GetErrorCode(err))

	_, err = config.LoadSyncFile(writeFile(t, "nox.toml", "packages = [\"gcc\""))
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigParse, errors.GetErrorCode(err))
}
