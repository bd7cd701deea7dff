// nox-manpage writes one man page per command into a directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/nox/internal/cli"
	"github.com/arthur-debert/nox/internal/version"
)

func main() {
	dir := "man"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "nox-manpage: %v\n", err)
		os.Exit(1)
	}

	header := &doc.GenManHeader{
		Title:   "NOX",
		Section: "1",
		Source:  "nox " + version.Version,
		Manual:  "nox toolchain installer",
	}
	if err := doc.GenManTree(cli.NewRootCmd(), header, dir); err != nil {
		fmt.Fprintf(os.Stderr, "nox-manpage: %v\n", err)
		os.Exit(1)
	}
}
