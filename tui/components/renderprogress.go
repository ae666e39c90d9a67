package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/vcut/tui/styles"
)

// RenderProgressState is what the progress box shows for one render.
type RenderProgressState struct {
	Mode      string
	Total     int
	Completed int
	// Current is the last segment range extracted.
	Current       string
	Concatenating bool
	Done          bool
	Output        string
	Err           error
}

// Percent returns completed extractions as a whole percentage.
func (s RenderProgressState) Percent() int {
	if s.Total <= 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}

// ProgressBar renders a bar of the given width with filled cells for the
// completed fraction.
func ProgressBar(completed, total, width int) string {
	if width < 1 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = width * completed / total
	}
	if filled > width {
		filled = width
	}
	done := lipgloss.NewStyle().Foreground(styles.Green)
	pending := lipgloss.NewStyle().Foreground(styles.Pending)
	return done.Render(strings.Repeat("█", filled)) + pending.Render(strings.Repeat("░", width-filled))
}

// RenderProgress renders the render progress box. spin is the spinner frame
// shown while concatenating.
func RenderProgress(state RenderProgressState, spin string, width int) string {
	if width < 10 {
		return ""
	}

	// box border = 2, plus 1 space padding each side
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}

	text := styles.PrimaryText
	var lines []string

	lines = append(lines, " "+ProgressBar(state.Completed, state.Total, barWidth)+text.Render(fmt.Sprintf(" %3d%%", state.Percent())))

	counter := fmt.Sprintf(" %d/%d segments", state.Completed, state.Total)
	if state.Mode != "" {
		counter += styles.SecondaryText.Render("  " + state.Mode)
	}
	lines = append(lines, text.Render(counter))

	var status string
	switch {
	case state.Err != nil:
		status = styles.Failure.Render(truncate("Failed: "+state.Err.Error(), innerW))
	case state.Done:
		status = styles.Success.Render("Done ") + styles.Path.Render(truncate(state.Output, innerW-5))
	case state.Concatenating:
		status = strings.TrimSpace(spin + " Concatenating")
		status = text.Render(status)
	case state.Current != "":
		status = text.Render(truncate(state.Current, innerW))
	}
	if status != "" {
		lines = append(lines, " "+status)
	}

	return RenderInfoBox("Render", lines, width)
}

func truncate(s string, width int) string {
	if width < 4 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width-3, "...")
}
