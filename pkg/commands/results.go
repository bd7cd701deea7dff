package commands

import (
	"time"

	"github.com/arthur-debert/nox/pkg/planner"
	"github.com/arthur-debert/nox/pkg/types"
)

// RunResult is the outcome of install, uninstall and sync
type RunResult struct {
	Command string         `json:"command" yaml:"command"`
	DryRun  bool           `json:"dryRun" yaml:"dryRun"`
	Plan    planner.Plan   `json:"plan" yaml:"plan"`
	Result  planner.Result `json:"result" yaml:"result"`
}

// PackageRow is one line of the package list
type PackageRow struct {
	Ref         types.PackageRef  `json:"ref" yaml:"ref"`
	DisplayName string            `json:"displayName" yaml:"displayName"`
	Version     string            `json:"version" yaml:"version"`
	Installed   bool              `json:"installed" yaml:"installed"`
	InstallType types.InstallType `json:"installType,omitempty" yaml:"installType,omitempty"`
	InstallDate *time.Time        `json:"installDate,omitempty" yaml:"installDate,omitempty"`
	Source      string            `json:"source" yaml:"source"`
}

// ListResult is the package list
type ListResult struct {
	Packages []PackageRow `json:"packages" yaml:"packages"`
}

// InfoResult describes one package
type InfoResult struct {
	Ref          types.PackageRef          `json:"ref" yaml:"ref"`
	DisplayName  string                    `json:"displayName" yaml:"displayName"`
	Description  string                    `json:"description,omitempty" yaml:"description,omitempty"`
	Version      string                    `json:"version" yaml:"version"`
	Provides     []string                  `json:"provides,omitempty" yaml:"provides,omitempty"`
	SourceURL    string                    `json:"sourceURL" yaml:"sourceURL"`
	Checksum     string                    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Source       string                    `json:"source" yaml:"source"`
	Dependencies []types.PackageDependency `json:"dependencies" yaml:"dependencies"`
	// InstallOrder is every package an install would touch, dependencies first
	InstallOrder []types.PackageRef   `json:"installOrder" yaml:"installOrder"`
	Record       *types.InstallRecord `json:"record,omitempty" yaml:"record,omitempty"`
	Dependents   []types.PackageRef   `json:"dependents,omitempty" yaml:"dependents,omitempty"`
	Location     string               `json:"location,omitempty" yaml:"location,omitempty"`
}

// SnippetResult is the rc-file line for a shell
type SnippetResult struct {
	Shell   string `json:"shell" yaml:"shell"`
	Snippet string `json:"snippet" yaml:"snippet"`
}
