package ui

import (
	"context"

	"github.com/Cyclone1070/vsh/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

// UI implements the UserInterface using Bubble Tea
type UI struct {
	program *tea.Program

	// Shell -> UI channels
	inputReq   chan InputRequest
	inputResp  chan string
	outputChan chan Output
	clearChan  chan struct{}
	statusChan chan StatusUpdate

	// Ready signal
	readyChan chan struct{}
}

// StatusUpdate changes the status bar.
type StatusUpdate struct {
	Phase   string
	Message string
}

// UIChannels holds the channels for UI communication
type UIChannels struct {
	InputReq   chan InputRequest
	InputResp  chan string
	OutputChan chan Output
	ClearChan  chan struct{}
	StatusChan chan StatusUpdate
	ReadyChan  chan struct{} // Signals when UI is ready to accept requests
}

// NewUIChannels creates a new UIChannels struct with default buffers
func NewUIChannels() *UIChannels {
	return &UIChannels{
		InputReq:   make(chan InputRequest),
		InputResp:  make(chan string),
		OutputChan: make(chan Output, 10),
		ClearChan:  make(chan struct{}, 10),
		StatusChan: make(chan StatusUpdate, 10),
		ReadyChan:  make(chan struct{}),
	}
}

// NewUI creates a new Bubble Tea UI
func NewUI(channels *UIChannels, cfg *config.Config, spinnerFactory SpinnerFactory) *UI {
	ui := &UI{
		inputReq:   channels.InputReq,
		inputResp:  channels.InputResp,
		outputChan: channels.OutputChan,
		clearChan:  channels.ClearChan,
		statusChan: channels.StatusChan,
		readyChan:  channels.ReadyChan,
	}

	model := newBubbleTeaModel(channels, cfg, spinnerFactory)
	ui.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	return ui
}

// Start runs the UI program until the user quits
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}

// ReadInput prompts the user for input
func (u *UI) ReadInput(ctx context.Context, req InputRequest) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case u.inputReq <- req:
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case response := <-u.inputResp:
			return response, nil
		}
	}
}

// WriteOutput sends command output to the UI
func (u *UI) WriteOutput(out Output) {
	select {
	case u.outputChan <- out:
	default:
		// Drop if channel is full
	}
}

// Clear wipes the scrollback
func (u *UI) Clear() {
	select {
	case u.clearChan <- struct{}{}:
	default:
	}
}

// WriteStatus updates the status bar
func (u *UI) WriteStatus(phase string, message string) {
	select {
	case u.statusChan <- StatusUpdate{Phase: phase, Message: message}:
	default:
		// Drop if channel is full
	}
}

// Ready returns a channel that is closed when the UI is ready to accept requests
func (u *UI) Ready() <-chan struct{} {
	return u.readyChan
}
