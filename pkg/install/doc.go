// Package install is the orchestrator that puts packages into the store and
// takes them out again.
//
// Install resolves a definition, installs its Build and Runtime
// dependencies concurrently, then fetches, unpacks and relocates the package
// into its store slot before committing a record. The record is written
// only after the package directory is in place, so a failed install leaves
// the store exactly as it was. Installing something already present is a
// no-op, except that a direct request promotes an Indirect record to Direct.
//
// Uninstall runs the package's uninstall hook, removes its directory and
// deletes the record. It refuses to remove a package that other installed
// packages depend on unless forced.
package install
