package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/ui/models"
)

const keyHint = "↑/↓ history · tab complete · pgup/pgdn scroll · ctrl+c quit"

// RenderStatus renders the status bar
func RenderStatus(s models.State, st Styles) string {
	if s.StatusPhase == models.PhaseRunning {
		dots := strings.Repeat(".", s.DotCount)
		label := "Running"
		if s.StatusMessage != "" {
			label = fmt.Sprintf("Running %s", s.StatusMessage)
		}
		return st.StatusRunning.Render(fmt.Sprintf("%s %s%s", s.Spinner.View(), label, dots))
	}

	status := "Ready"
	if s.StatusMessage != "" {
		status = s.StatusMessage
	}
	return st.StatusReady.Render(status) + "  " + st.StatusHint.Render(keyHint)
}
