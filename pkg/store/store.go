package store

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"sync"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/filesystem"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/shell"
	"github.com/arthur-debert/nox/pkg/types"
)

// State is the decoded contents of the state file
type State map[types.PackageRef]types.InstallRecord

// Store is the durable ref -> record mapping
type Store struct {
	mu sync.Mutex

	fs           filesystem.FS
	storeDir     string
	stateFile    string
	manifestFile string
}

// Layout names the files a Store owns
type Layout interface {
	StoreDir() string
	StateFile() string
	ManifestFile() string
}

// New creates a Store. Nothing is read until the first operation.
func New(fs filesystem.FS, layout Layout) *Store {
	return &Store{
		fs:           fs,
		storeDir:     layout.StoreDir(),
		stateFile:    layout.StateFile(),
		manifestFile: layout.ManifestFile(),
	}
}

// Has reports whether ref is installed
func (s *Store) Has(ref types.PackageRef) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := state[ref]
	return ok, nil
}

// Get returns the record for ref or a NOT_FOUND error
func (s *Store) Get(ref types.PackageRef) (types.InstallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return types.InstallRecord{}, err
	}
	rec, ok := state[ref]
	if !ok {
		return types.InstallRecord{}, errors.Newf(errors.ErrNotFound, "package %s is not installed", ref).
			WithDetail("package", string(ref))
	}
	return rec, nil
}

// Set upserts the record for ref, persists and regenerates the manifest
func (s *Store) Set(ref types.PackageRef, rec types.InstallRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	rec.Ref = ref
	state[ref] = rec
	return s.save(state)
}

// Update applies fn to the current record for ref and persists the result.
// The read, fn and the write happen under one lock acquisition. If fn
// returns an error nothing is written.
func (s *Store) Update(ref types.PackageRef, fn func(rec *types.InstallRecord) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	rec, ok := state[ref]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "package %s is not installed", ref).
			WithDetail("package", string(ref))
	}
	if err := fn(&rec); err != nil {
		return err
	}
	rec.Ref = ref
	state[ref] = rec
	return s.save(state)
}

// Delete removes ref if present. The state file and manifest are rewritten
// either way.
func (s *Store) Delete(ref types.PackageRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	delete(state, ref)
	return s.save(state)
}

// Keys returns the installed refs, sorted
func (s *Store) Keys() ([]types.PackageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	return sortedKeys(state), nil
}

// Values returns the installed records, sorted by ref
func (s *Store) Values() ([]types.InstallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	return sortedValues(state), nil
}

// Entries returns a snapshot copy of the whole mapping
func (s *Store) Entries() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Dependents returns the installed packages that have a Build or Runtime
// dependency on ref, sorted. The index is rebuilt from the records on every
// call.
func (s *Store) Dependents(ref types.PackageRef) ([]types.PackageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	return reverseIndex(state)[ref], nil
}

// reverseIndex maps each ref to the refs depending on it
func reverseIndex(state State) map[types.PackageRef][]types.PackageRef {
	index := make(map[types.PackageRef][]types.PackageRef)
	for _, dependent := range sortedKeys(state) {
		for _, dep := range state[dependent].Dependencies {
			if dep.Type.Enforced() {
				index[dep.Ref] = append(index[dep.Ref], dependent)
			}
		}
	}
	return index
}

// load reads the state file, resetting it to {} when missing or corrupt.
// Callers must hold s.mu.
func (s *Store) load() (State, error) {
	logger := logging.GetLogger("store")

	data, err := s.fs.ReadFile(s.stateFile)
	if err != nil {
		logger.Warn().Err(err).Str("file", s.stateFile).Msg("State file unreadable, initializing empty state")
		return s.reset()
	}

	state := State{}
	if err := json.Unmarshal(data, &state); err != nil || state == nil {
		logger.Warn().Err(err).Str("file", s.stateFile).Msg("State file corrupt, initializing empty state")
		return s.reset()
	}

	return state, nil
}

func (s *Store) reset() (State, error) {
	state := State{}
	if err := s.writeAtomic(s.stateFile, []byte("{}\n")); err != nil {
		return nil, err
	}
	return state, nil
}

// save writes the state file, then the manifest. Callers must hold s.mu.
func (s *Store) save(state State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := s.writeAtomic(s.stateFile, data); err != nil {
		return err
	}

	manifest, err := shell.GenerateManifest(s.storeDir, sortedValues(state))
	if err != nil {
		return err
	}
	if err := s.writeAtomic(s.manifestFile, []byte(manifest)); err != nil {
		return err
	}

	logger := logging.GetLogger("store")
	logger.Debug().Int("packages", len(state)).Msg("State saved")
	return nil
}

// writeAtomic replaces name with data through a sibling temp file
func (s *Store) writeAtomic(name string, data []byte) error {
	if err := s.fs.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", name)
	}
	tmp := name + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, name); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", name)
	}
	return nil
}

// Encode renders state the way it is stored on disk: two-space indented
// JSON keyed by ref, with a trailing newline
func Encode(state State) ([]byte, error) {
	if len(state) == 0 {
		return []byte("{}\n"), nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode state")
	}
	return append(data, '\n'), nil
}

func sortedKeys(state State) []types.PackageRef {
	keys := make([]types.PackageRef, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedValues(state State) []types.InstallRecord {
	values := make([]types.InstallRecord, 0, len(state))
	for _, k := range sortedKeys(state) {
		values = append(values, state[k])
	}
	return values
}
