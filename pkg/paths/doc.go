// Package paths provides centralized path handling for nox.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for every location nox reads or writes:
//
//   - the package store (installed package trees)
//   - the store state file and the generated path manifest
//   - user configuration and package definition files
//   - logs and metrics
//
// # Environment Variables
//
//   - NOX_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/nox)
//   - NOX_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/nox)
//   - NOX_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/nox)
//   - NOX_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/nox)
//   - NOX_STORE_DIR: Override the store directory (default: <data>/store)
//
// # Layout
//
//	<data>/store/<ref>/        installed package tree
//	<data>/store/state.json    installation records
//	<data>/store/paths.sh      path manifest, sourced by the user's shell
//	<config>/config.toml       application settings
//	<config>/packages/         package definition files (*.toml, *.yaml)
//	<state>/nox.log            log file
//	<state>/metrics.prom       metrics in Prometheus text format
package paths
