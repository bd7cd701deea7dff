// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/arthur-debert/nox/pkg/commands"
	"github.com/arthur-debert/nox/pkg/planner"
	"github.com/arthur-debert/nox/pkg/style"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *commands.RunResult:
		return r.renderRun(v)
	case *commands.ListResult:
		return r.renderList(v)
	case *commands.InfoResult:
		_, err := fmt.Fprint(r.output, v.Markdown())
		return err
	case *commands.SnippetResult:
		_, err := fmt.Fprintln(r.output, v.Snippet)
		return err
	case string:
		_, err := fmt.Fprint(r.output, v)
		return err
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderRun(res *commands.RunResult) error {
	if len(res.Plan.Actions) == 0 {
		_, err := fmt.Fprintln(r.output, "Nothing to do.")
		return err
	}

	if res.DryRun {
		if _, err := fmt.Fprintf(r.output, "Plan %s (dry run, nothing changed):\n", res.Plan.ID); err != nil {
			return err
		}
		for _, a := range res.Plan.Actions {
			if _, err := fmt.Fprintf(r.output, "  %s\n", ActionLine(a)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, o := range res.Result.Outcomes {
		line := fmt.Sprintf("%-7s %s", o.Status, ActionLine(o.Action))
		if o.Error != "" {
			line += ": " + o.Error
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.output, Summary(res))
	return err
}

func (r *Renderer) renderList(res *commands.ListResult) error {
	if len(res.Packages) == 0 {
		_, err := fmt.Fprintln(r.output, "No packages installed.")
		return err
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tVERSION\tTYPE\tINSTALLED\tSOURCE")
	for _, p := range res.Packages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Ref, p.Version, InstallTypeText(p), InstallDateText(p), p.Source)
	}
	return tw.Flush()
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Strip(msg))
	return err
}

// ActionLine describes an action, e.g. "uninstall jdk (forced)"
func ActionLine(a planner.Action) string {
	line := fmt.Sprintf("%s %s", a.Kind, a.Ref)
	if a.Force {
		line += " (forced)"
	}
	return line
}

// Summary counts the outcomes of a run
func Summary(res *commands.RunResult) string {
	return fmt.Sprintf("%s: %d done, %d kept, %d failed",
		res.Command,
		res.Result.Count(planner.Done),
		res.Result.Count(planner.Kept),
		res.Result.Count(planner.Failed))
}

// InstallTypeText is the TYPE column of the package list
func InstallTypeText(p commands.PackageRow) string {
	if !p.Installed {
		return "available"
	}
	return string(p.InstallType)
}

// InstallDateText is the INSTALLED column of the package list
func InstallDateText(p commands.PackageRow) string {
	if p.InstallDate == nil {
		return "-"
	}
	return p.InstallDate.Local().Format("2006-01-02 15:04")
}
