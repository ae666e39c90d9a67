package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/vcut/tui/styles"
)

// Theme returns a huh theme using the progress display palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Accent).
		PaddingLeft(1)
	t.Focused.Title = lipgloss.NewStyle().Foreground(styles.Header).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Header).Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Header)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.Accent).
		Foreground(styles.Text).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Border).
		Foreground(styles.Muted).
		Padding(0, 1)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(styles.Border)
	t.Blurred.FocusedButton = t.Focused.BlurredButton
	t.Blurred.BlurredButton = lipgloss.NewStyle().Foreground(styles.Border).Padding(0, 1)
	t.Blurred.Next = t.Blurred.FocusedButton

	return t
}
