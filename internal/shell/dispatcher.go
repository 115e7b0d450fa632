// Package shell interprets command lines against a filesystem snapshot.
//
// Commands never mutate the snapshot they are given. A command that changes the tree
// returns the new snapshot in its Result; errors are reported as output text.
package shell

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/Cyclone1070/vsh/internal/metrics"
	"github.com/Cyclone1070/vsh/internal/vfs"
	"go.uber.org/zap"
)

// NotConfiguredMessage is returned for unknown commands when no fallback is available.
const NotConfiguredMessage = `Error: GEMINI_API_KEY is not configured. AI-powered commands are disabled.
Please set the GEMINI_API_KEY environment variable and restart vsh.`

// fallbackLabel is the metrics label for lines handled by the resolver.
const fallbackLabel = "fallback"

// Resolver produces output for command lines no built-in handles.
type Resolver interface {
	Resolve(ctx context.Context, line string) (string, error)
}

// MarkdownRenderer renders markdown for terminal display.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// Recorder receives per-command measurements.
type Recorder interface {
	ObserveCommand(command, outcome string, d time.Duration)
	ObserveFallback(outcome string)
}

// HelpEntry is an extra line for the help listing, for commands handled outside the
// dispatcher.
type HelpEntry struct {
	Usage       string
	Description string
}

// Options configures a Dispatcher. Zero values fall back to working defaults.
type Options struct {
	User        string
	Hostname    string
	RenderWidth int

	Resolver Resolver
	Renderer MarkdownRenderer
	Recorder Recorder
	Logger   *zap.Logger
	Rand     *rand.Rand
	Now      func() time.Time

	ExtraHelp []HelpEntry
}

// Dispatcher routes command lines to built-ins or the fallback resolver.
type Dispatcher struct {
	user        string
	hostname    string
	renderWidth int

	resolver Resolver
	renderer MarkdownRenderer
	recorder Recorder
	logger   *zap.Logger
	rand     *rand.Rand
	now      func() time.Time

	extraHelp []HelpEntry
	commands  map[string]Command
}

// NewDispatcher creates a dispatcher with the full built-in registry.
func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{
		user:        opts.User,
		hostname:    opts.Hostname,
		renderWidth: opts.RenderWidth,
		resolver:    opts.Resolver,
		renderer:    opts.Renderer,
		recorder:    opts.Recorder,
		logger:      opts.Logger,
		rand:        opts.Rand,
		now:         opts.Now,
		extraHelp:   opts.ExtraHelp,
	}
	if d.user == "" {
		d.user = "user"
	}
	if d.hostname == "" {
		d.hostname = "linux"
	}
	if d.renderWidth <= 0 {
		d.renderWidth = 80
	}
	if d.recorder == nil {
		d.recorder = nopRecorder{}
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.rand == nil {
		seed := uint64(time.Now().UnixNano())
		d.rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if d.now == nil {
		d.now = time.Now
	}

	d.commands = make(map[string]Command)
	for _, cmd := range d.builtins() {
		d.commands[cmd.Name()] = cmd
	}
	return d
}

func (d *Dispatcher) builtins() []Command {
	return []Command{
		// Filesystem
		newCommand("pwd", "pwd", "Print the current working directory", GroupCore, d.pwd),
		newCommand("ls", "ls [path]", "List directory contents", GroupCore, d.ls, "path"),
		newCommand("cd", "cd [path]", "Change directory", GroupCore, d.cd, "path"),
		newCommand("mkdir", "mkdir <dir>", "Create a new directory", GroupCore, d.mkdir, "name"),
		newCommand("touch", "touch <file>", "Create a new empty file", GroupCore, d.touch, "name"),
		newCommand("cat", "cat <file>", "Concatenate and display files", GroupCore, d.cat, "path"),
		newCommand("tree", "tree [path]", "Show a directory as a tree", GroupCore, d.tree, "path"),
		newCommand("find", "find [path] [-name GLOB] [-type f|d]", "Search for files and directories", GroupCore, d.find),
		newCommand("glow", "glow <file>", "Render a markdown file", GroupCore, d.glow, "path"),

		// Information
		newCommand("help", "help", "Show this help message", GroupCore, d.help),
		newCommand("whoami", "whoami", "Print the current user", GroupCore, d.whoami),
		newCommand("date", "date", "Print the current date and time", GroupCore, d.date),
		newCommand("echo", "echo [text]", "Display a line of text", GroupCore, d.echo),
		newCommand("uname", "uname [-a]", "Print system information", GroupCore, d.uname),
		newCommand("neofetch", "neofetch", "Show system information", GroupCore, d.neofetch),

		// Novelty
		newCommand("snake", "snake", "Play the classic Snake game", GroupFun, d.snake),
		newCommand("2048", "2048", "Play 2048 number puzzle", GroupFun, d.game2048),
		newCommand("guess", "guess", "Number guessing game", GroupFun, d.guess),
		newCommand("tictactoe", "tictactoe", "Play Tic Tac Toe vs Computer", GroupFun, d.tictactoe),
		newCommand("hangman", "hangman", "Play Hangman word game", GroupFun, d.hangman),
		newCommand("fortune", "fortune", "Get a random fortune", GroupFun, d.fortune),
		newCommand("cowsay", "cowsay [msg]", "Make a cow say something", GroupFun, d.cowsay),
		newCommand("cmatrix", "cmatrix", "Show Matrix-style animation", GroupFun, d.cmatrix),
	}
}

// Commands returns the registered command names in sorted order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs one command line against fs with working directory cwd.
// It never returns an error: every failure is described in Result.Output.
func (d *Dispatcher) Execute(ctx context.Context, line string, fs *vfs.Filesystem, cwd vfs.Path) (res Result) {
	trimmed := strings.TrimSpace(line)
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return Result{}
	}

	name := strings.ToLower(fields[0])
	cmd, known := d.commands[name]
	label := name
	if !known {
		label = fallbackLabel
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("command panicked", zap.String("command", label), zap.Any("panic", r))
			res = failf("%s: internal error", name)
		}

		outcome := metrics.OutcomeOK
		if res.failed {
			outcome = metrics.OutcomeError
		}
		elapsed := time.Since(start)
		d.recorder.ObserveCommand(label, outcome, elapsed)
		d.logger.Debug("command executed",
			zap.String("command", label),
			zap.String("outcome", outcome),
			zap.Duration("duration", elapsed),
			zap.Bool("fs_changed", res.FS != nil),
			zap.Bool("cwd_changed", res.Cwd != nil),
		)
	}()

	if !known {
		return d.fallback(ctx, trimmed)
	}
	return cmd.Run(ctx, State{FS: fs, Cwd: cwd}, fields[1:])
}

func (d *Dispatcher) fallback(ctx context.Context, line string) Result {
	if d.resolver == nil {
		d.recorder.ObserveFallback(metrics.OutcomeError)
		return failf("%s", NotConfiguredMessage)
	}

	text, err := d.resolver.Resolve(ctx, line)
	if err != nil {
		d.recorder.ObserveFallback(metrics.OutcomeError)
		d.logger.Warn("fallback resolver failed", zap.Error(err))
		return failf("Error: %s", err.Error())
	}

	d.recorder.ObserveFallback(metrics.OutcomeOK)
	return output(text)
}

// UnavailableResolver reports the same error for every line. It stands in for a
// resolver whose client could not be created.
type UnavailableResolver struct {
	Err error
}

func (u UnavailableResolver) Resolve(context.Context, string) (string, error) {
	if u.Err == nil {
		return "", fmt.Errorf("fallback resolver unavailable")
	}
	return "", u.Err
}

type nopRecorder struct{}

func (nopRecorder) ObserveCommand(string, string, time.Duration) {}
func (nopRecorder) ObserveFallback(string)                       {}
