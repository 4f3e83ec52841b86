package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/vyPal/provsniff/lib/runner"
)

// Text prints findings grouped per file followed by a summary line.
type Text struct{}

func (Text) Report(w io.Writer, results []runner.Result) error {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, r := range results {
		if r.Err == nil && len(r.Diagnostics) == 0 {
			continue
		}
		fmt.Fprintln(w, bold(r.Path))
		if r.Err != nil {
			fmt.Fprintf(w, "  %s  %s\n", red("failed"), r.Err)
		}
		for _, d := range r.Diagnostics {
			sev := yellow(fmt.Sprintf("%-7s", d.Severity))
			if d.Severity == analyzer.SeverityError {
				sev = red(fmt.Sprintf("%-7s", d.Severity))
			}
			pos := fmt.Sprintf("%d:%d", d.Line, d.Column)
			fmt.Fprintf(w, "  %-8s %s  %s  %s\n", pos, sev, d.Message, faint("("+source(d)+")"))
		}
		fmt.Fprintln(w)
	}

	s := Summarize(results)
	problems := s.Errors + s.Warnings
	switch {
	case problems == 0 && s.Failed == 0:
		fmt.Fprintln(w, color.GreenString("No problems found in %d files", s.Files))
	default:
		line := fmt.Sprintf("%d problems (%d errors, %d warnings) in %d files", problems, s.Errors, s.Warnings, s.Files)
		if s.Failed > 0 {
			line += fmt.Sprintf(", %d could not be checked", s.Failed)
		}
		if s.Failing() {
			fmt.Fprintln(w, color.RedString(line))
		} else {
			fmt.Fprintln(w, color.YellowString(line))
		}
	}
	return nil
}
