package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/adrianpk/warden/internal/policy"
	"github.com/adrianpk/warden/internal/rules"
)

// PrintRules writes the effective rule set and any configuration warnings.
func PrintRules(w io.Writer, set rules.Set, warnings []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "PATTERNS (%d)\n", len(set.Patterns))
	fmt.Fprintln(tw, "ACTION\tREASON\tPATTERN")
	for _, r := range set.Patterns {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Action, r.Reason, r.Pattern)
	}

	fmt.Fprintf(tw, "\nPATHS (%d)\n", len(set.Paths))
	fmt.Fprintln(tw, "LEVEL\tPATH")
	for _, r := range set.Paths {
		fmt.Fprintf(tw, "%s\t%s\n", r.Level, r.Path)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(warnings) > 0 {
		fmt.Fprintf(w, "\nWARNINGS (%d)\n", len(warnings))
		for _, warning := range warnings {
			fmt.Fprintf(w, "  %s\n", warning)
		}
	}
	return nil
}

// PrintDecision writes a one-line summary of a decision.
func PrintDecision(w io.Writer, d policy.Decision) {
	if d.Allowed() {
		fmt.Fprintln(w, "allow")
		return
	}
	fmt.Fprintf(w, "%s: %s", d.Outcome, d.Reason)
	if d.MatchedText != "" {
		fmt.Fprintf(w, " (matched: %s)", d.MatchedText)
	}
	fmt.Fprintln(w)
}
