// Package filesystem provides filesystem implementations for nox.
//
// This package contains the FS interface used by the store together with
// the standard OS filesystem and an afero-backed in-memory filesystem.
package filesystem
