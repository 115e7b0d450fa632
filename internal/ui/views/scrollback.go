package views

import (
	"strings"

	"github.com/Cyclone1070/vsh/internal/ui/models"
)

// Welcome is shown before the first command.
const Welcome = "Welcome to vsh. Type 'help' to see the available commands."

// RenderPrompt renders user@host:path$ with the configured colors.
func RenderPrompt(p models.Prompt, st Styles) string {
	return st.User.Render(p.User+"@"+p.Host) + ":" + st.Path.Render(p.Path) + "$ "
}

// RenderScrollback renders the scrollback viewport.
func RenderScrollback(s models.State) string {
	return s.Viewport.View()
}

// FormatScrollback formats the blocks for the viewport.
func FormatScrollback(blocks []models.Block, st Styles) string {
	if len(blocks) == 0 {
		return st.Text.Render(Welcome)
	}

	var lines []string
	for _, b := range blocks {
		lines = append(lines, RenderPrompt(b.Prompt, st)+st.Text.Render(b.Command))
		if b.Output == "" {
			continue
		}
		if b.Failed {
			lines = append(lines, st.Error.Render(b.Output))
		} else {
			lines = append(lines, b.Output)
		}
	}
	return strings.Join(lines, "\n")
}
