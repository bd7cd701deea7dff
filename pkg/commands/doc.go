// Package commands provides the high-level command implementations for nox.
//
// This is the orchestration layer between the CLI and the packages that do
// the work. Setup builds an Environment from settings and paths; each
// command takes the Environment and returns a result value the ui package
// knows how to render.
package commands
