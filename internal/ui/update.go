package ui

import (
	"strings"
	"time"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/ui/models"
	"github.com/Cyclone1070/vsh/internal/ui/services"
	"github.com/Cyclone1070/vsh/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Rows taken by the input line and the status bar.
const chromeHeight = 2

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state  models.State
	styles views.Styles

	tickInterval    time.Duration
	scrollbackLimit int

	// Channels for communication with the shell loop
	inputReq   <-chan InputRequest
	inputResp  chan<- string
	outputChan <-chan Output
	clearChan  <-chan struct{}
	statusChan <-chan StatusUpdate

	// Ready signal
	readyChan chan<- struct{}
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.styles)
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(channels *UIChannels, cfg *config.Config, spinnerFactory SpinnerFactory) BubbleTeaModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()

	vp := viewport.New(80, 20)

	tickInterval := time.Duration(cfg.UI.TickIntervalMs) * time.Millisecond
	if tickInterval <= 0 {
		tickInterval = 300 * time.Millisecond
	}

	m := BubbleTeaModel{
		state: models.State{
			Input:       ti,
			Viewport:    vp,
			Spinner:     spinnerFactory(),
			StatusPhase: models.PhaseReady,
		},
		styles:          views.NewStyles(cfg.UI),
		tickInterval:    tickInterval,
		scrollbackLimit: cfg.Shell.ScrollbackLimit,
		inputReq:        channels.InputReq,
		inputResp:       channels.InputResp,
		outputChan:      channels.OutputChan,
		clearChan:       channels.ClearChan,
		statusChan:      channels.StatusChan,
		readyChan:       channels.ReadyChan,
	}
	m.updateViewport()
	return m
}

// Internal messages
type tickMsg time.Time
type inputRequestMsg InputRequest
type outputReceivedMsg Output
type clearMsg struct{}
type statusUpdateMsg StatusUpdate

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	// Signal that UI is ready
	if m.readyChan != nil {
		close(m.readyChan)
	}

	return tea.Batch(
		textinput.Blink,
		m.state.Spinner.Tick,
		m.tick(),
		listenForInputRequests(m.inputReq),
		listenForOutput(m.outputChan),
		listenForClear(m.clearChan),
		listenForStatus(m.statusChan),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width
		m.state.Viewport.Height = max(1, msg.Height-chromeHeight)
		m.updateViewport()

	case tickMsg:
		m.state.DotCount = (m.state.DotCount + 1) % 4
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case inputRequestMsg:
		m.state.Prompt = msg.Prompt
		m.state.Entries = msg.Entries
		m.state.History = msg.History
		m.state.HistoryIndex = len(msg.History)
		m.state.CanSubmit = true
		m.state.StatusPhase = models.PhaseReady
		m.state.StatusMessage = ""
		return m, listenForInputRequests(m.inputReq)

	case outputReceivedMsg:
		m.attachOutput(Output(msg))
		m.updateViewport()
		return m, listenForOutput(m.outputChan)

	case clearMsg:
		m.state.Blocks = nil
		m.updateViewport()
		return m, listenForClear(m.clearChan)

	case statusUpdateMsg:
		m.state.StatusPhase = msg.Phase
		m.state.StatusMessage = msg.Message
		return m, listenForStatus(m.statusChan)
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		return m, cmd
	}

	// Input is disabled while a command runs
	if !m.state.CanSubmit {
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m.submit()

	case "up":
		if len(m.state.History) == 0 {
			return m, nil
		}
		m.state.HistoryIndex = max(0, m.state.HistoryIndex-1)
		m.setInput(m.historyLine())
		return m, nil

	case "down":
		m.state.HistoryIndex = min(len(m.state.History), m.state.HistoryIndex+1)
		m.setInput(m.historyLine())
		return m, nil

	case "tab":
		m.setInput(services.Complete(m.state.Input.Value(), m.state.Entries))
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// submit echoes the line into the scrollback and hands it to the shell loop.
func (m BubbleTeaModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.state.Input.Value())
	if line == "" {
		return m, nil
	}

	m.appendBlock(models.Block{Prompt: m.state.Prompt, Command: line})
	m.updateViewport()

	m.inputResp <- line
	m.state.Input.SetValue("")
	m.state.CanSubmit = false
	m.state.StatusPhase = models.PhaseRunning
	m.state.StatusMessage = line
	return m, nil
}

func (m BubbleTeaModel) historyLine() string {
	if m.state.HistoryIndex < len(m.state.History) {
		return m.state.History[m.state.HistoryIndex]
	}
	return ""
}

func (m *BubbleTeaModel) setInput(value string) {
	m.state.Input.SetValue(value)
	m.state.Input.CursorEnd()
}

func (m *BubbleTeaModel) appendBlock(b models.Block) {
	m.state.Blocks = append(m.state.Blocks, b)
	if m.scrollbackLimit > 0 && len(m.state.Blocks) > m.scrollbackLimit {
		m.state.Blocks = m.state.Blocks[len(m.state.Blocks)-m.scrollbackLimit:]
	}
}

// attachOutput completes the oldest running block.
func (m *BubbleTeaModel) attachOutput(out Output) {
	for i := range m.state.Blocks {
		b := &m.state.Blocks[i]
		if !b.Done {
			b.Output = out.Text
			b.Failed = out.Failed
			b.Done = true
			return
		}
	}
}

// updateViewport updates the viewport content
func (m *BubbleTeaModel) updateViewport() {
	m.state.Viewport.SetContent(views.FormatScrollback(m.state.Blocks, m.styles))
	m.state.Viewport.GotoBottom()
}

func (m BubbleTeaModel) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Helper commands for listening to channels
func listenForInputRequests(ch <-chan InputRequest) tea.Cmd {
	return func() tea.Msg {
		return inputRequestMsg(<-ch)
	}
}

func listenForOutput(ch <-chan Output) tea.Cmd {
	return func() tea.Msg {
		return outputReceivedMsg(<-ch)
	}
}

func listenForClear(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return clearMsg{}
	}
}

func listenForStatus(ch <-chan StatusUpdate) tea.Cmd {
	return func() tea.Msg {
		return statusUpdateMsg(<-ch)
	}
}
