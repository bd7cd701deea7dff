package cli

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/nox/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// helpFuncs are the template functions the usage template relies on. Help
// goes to stdout, so headings are bold only when stdout is a color terminal.
func helpFuncs(styled bool) template.FuncMap {
	bold := func(s string) string {
		if !styled {
			return s
		}
		return pterm.Bold.Sprint(s)
	}
	return template.FuncMap{
		"bold":      bold,
		"upper":     strings.ToUpper,
		"boldUpper": func(s string) string { return bold(strings.ToUpper(s)) },
	}
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(helpFuncs(ui.IsColorTerminal(os.Stdout)))
}
