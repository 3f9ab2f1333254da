package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions for the terminal surface.
type Styles struct {
	Logo      lipgloss.Style
	Label     lipgloss.Style
	Strip     lipgloss.Style
	Dot       lipgloss.Style
	DotActive lipgloss.Style
}

// NewStyles creates a Styles instance with default values.
func NewStyles() *Styles {
	return &Styles{
		Logo:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Strip: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")),
		Dot:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		DotActive: lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true),
	}
}
