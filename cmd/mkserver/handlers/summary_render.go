package handlers

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/imamik/mkserver/internal/provisioning"
)

var (
	summaryColorBlue = lipgloss.Color("#3b82f6")
	summaryColorDim  = lipgloss.Color("#6b7280")
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorBlue)

	summaryDimStyle = lipgloss.NewStyle().
			Foreground(summaryColorDim)
)

// isTerminal reports whether stdout is a terminal (replaceable in tests).
var isTerminal = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// renderSummary produces the run summary. The five summary lines are stable
// for scripts; the styled header is only added on a terminal.
func renderSummary(name string, s *provisioning.Summary, styled bool) string {
	var b strings.Builder

	if styled {
		b.WriteString("\n")
		b.WriteString(summaryTitleStyle.Render(fmt.Sprintf("  mkserver: %s", name)))
		b.WriteString("\n")
		b.WriteString(summaryDimStyle.Render(fmt.Sprintf("  run %s, %d created, %d existing", s.RunID, s.Created, s.Existing)))
		b.WriteString("\n")
		b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("─", 40)))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Cloud server create failures: %d\n", s.TotalFailures)
	fmt.Fprintf(&b, "Cloud server max consecutive failures: %d\n", s.MaxConsecutiveFailures)
	fmt.Fprintf(&b, "Cloud servers needing help: %d\n", len(s.Retried))
	fmt.Fprintf(&b, "Cloud servers failed: %s\n", formatIndices(s.Retried))
	fmt.Fprintf(&b, "Cloud changed: %s\n", formatBool(s.Changed))

	return b.String()
}

func formatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
