package types

import (
	"time"

	"github.com/arthur-debert/nox/pkg/semver"
)

// InstallType records why a package is installed
type InstallType string

const (
	// Direct packages were explicitly requested by the user
	Direct InstallType = "Direct"
	// Indirect packages were pulled in as another package's dependency
	Indirect InstallType = "Indirect"
)

// InstallRecord is the persisted snapshot of an installed package: the
// static fields of its definition plus when and why it was installed.
type InstallRecord struct {
	Ref          PackageRef          `json:"ref"`
	DisplayName  string              `json:"displayName"`
	Description  string              `json:"description,omitempty"`
	Provides     []string            `json:"provides,omitempty"`
	Version      semver.Version      `json:"version"`
	Dependencies []PackageDependency `json:"dependencies"`
	SourceURL    string              `json:"sourceURL"`
	Checksum     string              `json:"checksum,omitempty"`
	Output       OutputLayout        `json:"output"`
	InstallDate  time.Time           `json:"installDate"`
	InstallType  InstallType         `json:"installType"`
}

// NewInstallRecord strips the hooks from def and stamps it
func NewInstallRecord(def *PackageDefinition, installType InstallType, installDate time.Time) InstallRecord {
	deps := make([]PackageDependency, len(def.Dependencies))
	copy(deps, def.Dependencies)
	return InstallRecord{
		Ref:          def.Ref,
		DisplayName:  def.DisplayName,
		Description:  def.Description,
		Provides:     append([]string(nil), def.Provides...),
		Version:      def.Version,
		Dependencies: deps,
		SourceURL:    def.SourceURL,
		Checksum:     def.Checksum,
		Output:       def.Output,
		InstallDate:  installDate,
		InstallType:  installType,
	}
}

// DependsOn reports whether the record has an enforced dependency on ref
func (r InstallRecord) DependsOn(ref PackageRef) bool {
	for _, dep := range r.Dependencies {
		if dep.Ref == ref && dep.Type.Enforced() {
			return true
		}
	}
	return false
}
