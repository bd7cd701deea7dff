// nox-completions writes shell completion scripts for every supported shell
// into a directory, for packaging.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nox/internal/cli"
)

type completion struct {
	file string
	gen  func(root *cobra.Command, w io.Writer) error
}

var completions = []completion{
	{"nox.bash", func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) }},
	{"_nox", func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) }},
	{"nox.fish", func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) }},
	{"nox.ps1", func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) }},
}

func main() {
	dir := "completions"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := generate(dir); err != nil {
		fmt.Fprintf(os.Stderr, "nox-completions: %v\n", err)
		os.Exit(1)
	}
}

func generate(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	root := cli.NewRootCmd()
	for _, c := range completions {
		f, err := os.Create(filepath.Join(dir, c.file))
		if err != nil {
			return err
		}
		genErr := c.gen(root, f)
		if err := f.Close(); genErr == nil {
			genErr = err
		}
		if genErr != nil {
			return fmt.Errorf("%s: %w", c.file, genErr)
		}
	}
	return nil
}
