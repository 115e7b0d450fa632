package ui

import (
	"context"

	"github.com/Cyclone1070/vsh/internal/ui/models"
)

// InputRequest asks the user for the next command line.
type InputRequest struct {
	Prompt models.Prompt
	// Entries of the working directory, used for tab completion.
	Entries []models.Entry
	// History of submitted lines, oldest first.
	History []string
}

// Output is the result of the last submitted line.
type Output struct {
	Text   string
	Failed bool
}

// UserInterface defines the contract for all user interactions.
//
// ReadInput blocks until the user submits a line or ctx is cancelled, in which
// case it returns ctx.Err().
type UserInterface interface {
	// ReadInput shows the prompt and waits for a command line
	ReadInput(ctx context.Context, req InputRequest) (string, error)

	// WriteOutput attaches output to the oldest command still running
	WriteOutput(out Output)

	// Clear wipes the scrollback
	Clear()

	// WriteStatus displays a status message (e.g., "Imported 12 files")
	WriteStatus(phase string, message string)

	// Start runs the interface until the user quits
	Start() error

	// Ready is closed once the interface accepts requests
	Ready() <-chan struct{}
}
