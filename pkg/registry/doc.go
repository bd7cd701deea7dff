// Package registry holds the package definitions nox knows how to install.
//
// Definitions come from two places: the built-ins compiled into the binary
// and definition files in the user's config directory. Both end up in one
// Registry, which the orchestrator consults by ref. A definition file may
// shadow a built-in of the same ref; two files may not define the same ref.
package registry
