// Package shell covers everything nox does with POSIX shells: generating
// the path manifest that exposes installed packages, the rc-file snippet
// that sources it, and running hook commands in-process with the manifest
// already sourced.
package shell
