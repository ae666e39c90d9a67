// Package styles holds the Lipgloss palette shared by vcut's terminal output.
package styles

import "github.com/charmbracelet/lipgloss"

// Ciapre palette from Gogh.
const (
	// Border is used for box outlines and dim accents.
	Border = lipgloss.Color("#5C4F4B")
	// Accent marks focused controls.
	Accent = lipgloss.Color("#724D7C")
	// Muted is secondary text.
	Muted = lipgloss.Color("#AEA47A")
	// Text is the primary foreground.
	Text = lipgloss.Color("#F3DBB2")
	// Header is used for box titles.
	Header = lipgloss.Color("#D33061")
	// Info highlights paths and interactive elements.
	Info = lipgloss.Color("#3097C6")
	// Pending fills the unfinished part of progress bars.
	Pending = lipgloss.Color("#CC8B3F")
	// Red is used for errors.
	Red = lipgloss.Color("#AC3835")
	// Green is used for success and finished work.
	Green = lipgloss.Color("#A6A75D")
)

var (
	PrimaryText   = lipgloss.NewStyle().Foreground(Text)
	SecondaryText = lipgloss.NewStyle().Foreground(Muted)
	Path          = lipgloss.NewStyle().Foreground(Info)
	Failure       = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Success       = lipgloss.NewStyle().Foreground(Green).Bold(true)
)
