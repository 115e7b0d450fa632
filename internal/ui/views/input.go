package views

import (
	"github.com/Cyclone1070/vsh/internal/ui/models"
)

// RenderInput renders the prompt and the input line. The prompt is hidden
// while a command is running.
func RenderInput(s models.State, st Styles) string {
	if !s.CanSubmit {
		return ""
	}
	return RenderPrompt(s.Prompt, st) + s.Input.View()
}
