package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Status phases shown in the status bar.
const (
	PhaseReady   = "ready"
	PhaseRunning = "running"
)

// Prompt is the user@host:path part printed before a command.
type Prompt struct {
	User string
	Host string
	Path string
}

// String renders the prompt without styling.
func (p Prompt) String() string {
	return p.User + "@" + p.Host + ":" + p.Path + "$ "
}

// Entry is a child of the working directory, offered to tab completion.
type Entry struct {
	Name  string
	IsDir bool
}

// Block is one command and its output in the scrollback.
type Block struct {
	Prompt  Prompt
	Command string
	Output  string
	Failed  bool
	// Done is false while the command is still running.
	Done bool
}

// State holds the UI state.
type State struct {
	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model

	Width  int
	Height int

	Prompt  Prompt
	Entries []Entry
	Blocks  []Block

	// History navigation. HistoryIndex == len(History) means a fresh line.
	History      []string
	HistoryIndex int

	CanSubmit     bool
	StatusPhase   string
	StatusMessage string
	DotCount      int
}
