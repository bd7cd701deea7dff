package config

import (
	"os"
	"sort"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/types"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SyncFile is a sync configuration: the packages a machine should have,
// either at the top level or per user
type SyncFile struct {
	Packages []string            `koanf:"packages"`
	Users    map[string]UserFile `koanf:"users"`

	// listed is set when the file has a top-level packages key, even an
	// empty one
	listed bool
}

// UserFile is one user's section of a sync configuration
type UserFile struct {
	Packages []string `koanf:"packages"`
}

// LoadSyncFile parses the TOML or YAML sync configuration at path
func LoadSyncFile(path string) (*SyncFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read sync configuration %s", path).
			WithDetail("file", path)
	}
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse sync configuration %s", path).
			WithDetail("file", path)
	}

	var sf SyncFile
	if err := unmarshal(k, "", &sf); err != nil {
		return nil, err
	}
	sf.listed = k.Exists("packages")
	return &sf, nil
}

// Desired returns the package list to sync. An explicit user selects that
// user's list. Otherwise the top-level list wins, falling back to the first
// user in name order.
func (s *SyncFile) Desired(user string) ([]types.PackageRef, error) {
	if user != "" {
		u, ok := s.Users[user]
		if !ok {
			return nil, errors.Newf(errors.ErrConfigValid, "no user %q in sync configuration", user)
		}
		return toRefs(u.Packages), nil
	}

	if s.listed {
		return toRefs(s.Packages), nil
	}

	if len(s.Users) == 0 {
		return nil, errors.New(errors.ErrConfigValid, "sync configuration lists no packages")
	}
	names := make([]string, 0, len(s.Users))
	for name := range s.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	return toRefs(s.Users[names[0]].Packages), nil
}

func toRefs(names []string) []types.PackageRef {
	refs := make([]types.PackageRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, types.PackageRef(name))
	}
	return refs
}
