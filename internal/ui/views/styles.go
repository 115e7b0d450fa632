package views

import (
	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by the views.
type Styles struct {
	User  lipgloss.Style
	Path  lipgloss.Style
	Text  lipgloss.Style
	Error lipgloss.Style

	StatusRunning lipgloss.Style
	StatusReady   lipgloss.Style
	StatusHint    lipgloss.Style
}

// NewStyles builds the styles from the configured colors.
func NewStyles(cfg config.UIConfig) Styles {
	return Styles{
		User:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.ColorUser)).Bold(true),
		Path:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.ColorPath)).Bold(true),
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.ColorText)),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.ColorError)),

		StatusRunning: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.ColorPath)),
		StatusReady:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.ColorUser)),
		StatusHint:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
