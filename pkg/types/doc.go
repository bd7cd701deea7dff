// Package types defines the core types shared across nox: package
// references and definitions, dependencies, installation records and the
// collaborator interfaces (fetch, extract, shell) that lifecycle hooks use.
package types
