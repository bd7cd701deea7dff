package commands

import (
	"sort"

	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/types"
)

// ListOptions configures List
type ListOptions struct {
	// All includes packages that are defined but not installed
	All bool
}

// List returns installed packages, sorted by ref
func List(env *Environment, opts ListOptions) (*ListResult, error) {
	log := logging.GetLogger("commands")

	records, err := env.Store.Entries()
	if err != nil {
		return nil, err
	}

	rows := make([]PackageRow, 0, len(records))
	for ref, rec := range records {
		date := rec.InstallDate
		rows = append(rows, PackageRow{
			Ref:         ref,
			DisplayName: rec.DisplayName,
			Version:     rec.Version.String(),
			Installed:   true,
			InstallType: rec.InstallType,
			InstallDate: &date,
			Source:      env.Registry.Source(ref),
		})
	}

	if opts.All {
		for _, ref := range env.Registry.List() {
			if _, ok := records[ref]; ok {
				continue
			}
			def, err := env.Registry.Lookup(ref)
			if err != nil {
				return nil, err
			}
			rows = append(rows, PackageRow{
				Ref:         ref,
				DisplayName: def.DisplayName,
				Version:     def.Version.String(),
				Source:      env.Registry.Source(ref),
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Ref < rows[j].Ref })

	log.Info().Str("command", "List").Int("packages", len(rows)).Msg("Command finished")
	return &ListResult{Packages: rows}, nil
}

// Installed returns the refs in the store, for shell completion
func Installed(env *Environment) []types.PackageRef {
	keys, err := env.Store.Keys()
	if err != nil {
		return nil
	}
	return keys
}
