package commands

import (
	"github.com/arthur-debert/nox/pkg/shell"
)

// Snippet returns the line to add to a shell's rc file so it picks up
// installed packages
func Snippet(env *Environment, shellName string) (*SnippetResult, error) {
	snippet, err := shell.GetShellIntegrationSnippet(shellName, env.Paths.ManifestFile())
	if err != nil {
		return nil, err
	}
	return &SnippetResult{Shell: shellName, Snippet: snippet}, nil
}
