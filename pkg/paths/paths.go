package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/nox/pkg/errors"
)

// Environment variable names
const (
	EnvNoxDataDir   = "NOX_DATA_DIR"
	EnvNoxConfigDir = "NOX_CONFIG_DIR"
	EnvNoxStateDir  = "NOX_STATE_DIR"
	EnvNoxStoreDir  = "NOX_STORE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files. These define the store layout and are not
// user-configurable; only the store root can be moved.
const (
	NoxDirName       = "nox"
	StoreDirName     = "store"
	StateFileName    = "state.json"
	ManifestFileName = "paths.sh"
	ConfigFileName   = "config.toml"
	PackagesDirName  = "packages"
	LogFileName      = "nox.log"
	MetricsFileName  = "metrics.prom"
)

// Paths provides centralized path management for nox
type Paths interface {
	DataDir() string
	ConfigDir() string
	StateDir() string
	StoreDir() string
	StateFile() string
	ManifestFile() string
	ConfigFile() string
	PackagesDir() string
	PackageDir(ref string) string
	LogFilePath() string
	MetricsFile() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	xdgData   string
	xdgConfig string
	xdgState  string
	storeDir  string
}

// New creates a new Paths instance. A non-empty storeDir takes precedence
// over NOX_STORE_DIR and the XDG default.
func New(storeDir string) (Paths, error) {
	p := &paths{}
	p.setupXDGDirs()

	switch {
	case storeDir != "":
		p.storeDir = expandHome(storeDir)
	case os.Getenv(EnvNoxStoreDir) != "":
		p.storeDir = expandHome(os.Getenv(EnvNoxStoreDir))
	default:
		p.storeDir = filepath.Join(p.xdgData, StoreDirName)
	}

	abs, err := filepath.Abs(p.storeDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for store %s", p.storeDir)
	}
	p.storeDir = abs

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	p.xdgData = fromEnvOr(EnvNoxDataDir, filepath.Join(xdg.DataHome, NoxDirName))
	p.xdgConfig = fromEnvOr(EnvNoxConfigDir, filepath.Join(xdg.ConfigHome, NoxDirName))
	p.xdgState = fromEnvOr(EnvNoxStateDir, filepath.Join(xdg.StateHome, NoxDirName))
}

func fromEnvOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return expandHome(v)
	}
	return fallback
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

func (p *paths) DataDir() string   { return p.xdgData }
func (p *paths) ConfigDir() string { return p.xdgConfig }
func (p *paths) StateDir() string  { return p.xdgState }
func (p *paths) StoreDir() string  { return p.storeDir }

// StateFile returns the path of the store state file
func (p *paths) StateFile() string {
	return filepath.Join(p.storeDir, StateFileName)
}

// ManifestFile returns the path of the generated path manifest
func (p *paths) ManifestFile() string {
	return filepath.Join(p.storeDir, ManifestFileName)
}

// ConfigFile returns the path of the application settings file
func (p *paths) ConfigFile() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// PackagesDir returns the directory scanned for package definition files
func (p *paths) PackagesDir() string {
	return filepath.Join(p.xdgConfig, PackagesDirName)
}

// PackageDir returns the final slot of an installed package inside the store
func (p *paths) PackageDir(ref string) string {
	return filepath.Join(p.storeDir, ref)
}

// LogFilePath returns the path of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// MetricsFile returns the path of the metrics textfile
func (p *paths) MetricsFile() string {
	return filepath.Join(p.xdgState, MetricsFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}
