package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// slowThreshold marks operations highlighted as slow in styled reports.
const slowThreshold = 100 * time.Millisecond

// Styles controls how a report is rendered on a terminal.
type Styles struct {
	Name    lipgloss.Style
	Dim     lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the styles used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Name:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// formatTimingTree outputs the timing tree in a hierarchical format.
// Example output:
//
//	check main.ledger: 125ms
//	├─ loader.load: 85ms
//	│  └─ parser.parse: 45ms
//	└─ ledger.process: 40ms
func formatTimingTree(w io.Writer, root *timerNode, styles *Styles) {
	duration := root.end.Sub(root.start)

	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Name.Render(root.name), formatDuration(duration))
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", root.name, formatDuration(duration))
	}

	for i, child := range root.children {
		isLast := i == len(root.children)-1
		formatNode(w, child, "", isLast, styles)
	}
}

// formatNode recursively formats a node and its children.
func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *Styles) {
	duration := node.end.Sub(node.start)

	// Choose tree characters
	var branch, extension string
	if isLast {
		branch = "└─ "
		extension = "   "
	} else {
		branch = "├─ "
		extension = "│  "
	}

	if styles != nil {
		timing := formatDuration(duration)
		if duration >= slowThreshold {
			timing = styles.Warning.Render(timing)
		} else {
			timing = styles.Dim.Render(timing)
		}
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim.Render(prefix+branch), node.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, formatDuration(duration))
	}

	childPrefix := prefix + extension
	for i, child := range node.children {
		childIsLast := i == len(node.children)-1
		formatNode(w, child, childPrefix, childIsLast, styles)
	}
}

// formatDuration formats a duration for display.
// Shows milliseconds for < 1s, seconds for >= 1s.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
