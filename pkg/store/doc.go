// Package store is nox's record of what is installed.
//
// The state lives in a single JSON file mapping package refs to install
// records. Every operation reads the whole file and every mutation writes
// the whole file back, followed by a full regeneration of the path manifest
// (paths.sh) from the new contents. A Store value serialises all of this
// behind one mutex, so concurrent installs can commit records without
// losing each other's updates.
//
// A missing or unparsable state file is not an error: the store resets it
// to an empty mapping and carries on, which is also how a fresh machine
// bootstraps.
package store
