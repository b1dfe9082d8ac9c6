package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/branchreview/internal/review"
)

// SeparatorWidth is the width of the rule lines framing the report.
const SeparatorWidth = 60

// TextWriter outputs a human-readable report. Styling is only applied when
// the destination is a color-capable terminal.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result review.Result) error {
	ew := &errWriter{w: w}

	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle := r.NewStyle().Faint(true)
	ruleStyle := r.NewStyle().Faint(true)
	rule := ruleStyle.Render(strings.Repeat("─", SeparatorWidth))

	in := result.Inputs
	if in.Branch != "" {
		ew.println(titleStyle.Render(fmt.Sprintf("Branch Review: %s vs %s", in.Branch, in.Base)))
	} else {
		ew.println(titleStyle.Render("Branch Review"))
	}
	if in.Repo != "" {
		ew.printf("%s %s\n", labelStyle.Render("Repository:"), in.Repo)
	}
	if in.Model != "" {
		ew.printf("%s %s\n", labelStyle.Render("Model:"), in.Model)
	}

	ew.println(rule)
	ew.printf("Files reviewed (%d):\n", len(result.Files))
	for _, f := range result.Files {
		ew.printf("  - %s\n", f)
	}
	if len(in.Excluded) > 0 {
		ew.println(labelStyle.Render(fmt.Sprintf("Excluded by filters (%d):", len(in.Excluded))))
		for _, f := range in.Excluded {
			ew.println(labelStyle.Render("  - " + f))
		}
	}

	ew.println(rule)
	ew.println(strings.TrimRight(result.Review, "\n"))
	ew.println(rule)

	if result.Timing.TotalMs > 0 {
		ew.printf("Completed in %dms (git: %dms, LLM: %dms)\n",
			result.Timing.TotalMs, result.Timing.GitMs, result.Timing.LLMMs)
	}

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
