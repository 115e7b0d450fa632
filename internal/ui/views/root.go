package views

import (
	"github.com/Cyclone1070/vsh/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State, st Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScrollback(s),
		RenderInput(s, st),
		RenderStatus(s, st),
	)
}
