package commands

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nox/pkg/types"
)

// Info describes ref, combining its definition with its install record
// when it is installed
func Info(env *Environment, ref types.PackageRef) (*InfoResult, error) {
	def, err := env.Registry.Lookup(ref)
	if err != nil {
		return nil, err
	}

	order, err := env.Orchestrator.Resolve(ref)
	if err != nil {
		return nil, err
	}

	info := &InfoResult{
		Ref:          def.Ref,
		DisplayName:  def.DisplayName,
		Description:  def.Description,
		Version:      def.Version.String(),
		Provides:     def.Provides,
		SourceURL:    def.SourceURL,
		Checksum:     def.Checksum,
		Source:       env.Registry.Source(ref),
		Dependencies: def.Dependencies,
		InstallOrder: order,
	}

	installed, err := env.Store.Has(ref)
	if err != nil {
		return nil, err
	}
	if installed {
		rec, err := env.Store.Get(ref)
		if err != nil {
			return nil, err
		}
		info.Record = &rec
		info.Location = env.Paths.PackageDir(string(ref))
		if info.Dependents, err = env.Store.Dependents(ref); err != nil {
			return nil, err
		}
	}
	return info, nil
}

// Markdown renders the info as a markdown document
func (i *InfoResult) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s `%s`\n\n", i.DisplayName, i.Version)
	if i.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(i.Description))
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Package | `%s` |\n", i.Ref)
	fmt.Fprintf(&b, "| Defined in | %s |\n", i.Source)
	fmt.Fprintf(&b, "| Source | %s |\n", i.SourceURL)
	if i.Checksum != "" {
		fmt.Fprintf(&b, "| Checksum | `%s` |\n", i.Checksum)
	}
	if len(i.Provides) > 0 {
		fmt.Fprintf(&b, "| Provides | %s |\n", strings.Join(i.Provides, ", "))
	}
	if i.Record != nil {
		fmt.Fprintf(&b, "| Installed | %s, %s |\n", i.Record.InstallType, i.Record.InstallDate.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "| Location | `%s` |\n", i.Location)
	} else {
		b.WriteString("| Installed | no |\n")
	}
	b.WriteString("\n")

	if len(i.Dependencies) > 0 {
		b.WriteString("## Dependencies\n\n")
		for _, dep := range i.Dependencies {
			fmt.Fprintf(&b, "- `%s` %s (%s)\n", dep.Ref, dep.Range, dep.Type)
		}
		b.WriteString("\n")
	}

	if len(i.Dependents) > 0 {
		b.WriteString("## Required by\n\n")
		for _, ref := range i.Dependents {
			fmt.Fprintf(&b, "- `%s`\n", ref)
		}
		b.WriteString("\n")
	}

	if len(i.InstallOrder) > 1 {
		b.WriteString("## Install order\n\n")
		for n, ref := range i.InstallOrder {
			fmt.Fprintf(&b, "%d. `%s`\n", n+1, ref)
		}
	}
	return b.String()
}
