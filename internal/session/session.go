// Package session holds the state of one interactive shell: the current filesystem
// snapshot, the working directory, command history and scrollback.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/Cyclone1070/vsh/internal/shell"
	"github.com/Cyclone1070/vsh/internal/vfs"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBusy is returned by Submit while another command is still running.
var ErrBusy = errors.New("session: a command is already running")

// Built-ins handled by the session rather than the dispatcher.
const (
	cmdClear   = "clear"
	cmdHistory = "history"
)

// Builtins describes the session-level commands for the help listing.
func Builtins() []shell.HelpEntry {
	return []shell.HelpEntry{
		{Usage: cmdClear, Description: "Clear the terminal screen"},
		{Usage: cmdHistory, Description: "Show the command history"},
	}
}

// Executor runs a command line against a snapshot.
type Executor interface {
	Execute(ctx context.Context, line string, fs *vfs.Filesystem, cwd vfs.Path) shell.Result
}

// SnapshotObserver is told about every snapshot the session adopts.
type SnapshotObserver interface {
	SetSnapshotNodes(n int)
}

// Entry is one block of scrollback: the prompt and command, followed by its output.
type Entry struct {
	Prompt  string
	Command string
	Output  string
}

// Outcome describes what a submitted line did.
type Outcome struct {
	Output string
	// Clear is set when the scrollback was wiped.
	Clear bool
	// Recorded is false for blank lines, which leave no trace.
	Recorded bool
	// Failed is set when the output is an error message.
	Failed bool
}

// DirEntry is a child of the working directory.
type DirEntry struct {
	Name  string
	IsDir bool
}

// Options configures a Session.
type Options struct {
	ID       string
	FS       *vfs.Filesystem
	Cwd      vfs.Path
	Logger   *zap.Logger
	Observer SnapshotObserver
}

// Session serialises command execution against one evolving snapshot.
type Session struct {
	id       string
	cfg      config.ShellConfig
	exec     Executor
	logger   *zap.Logger
	observer SnapshotObserver

	mu         sync.Mutex
	busy       bool
	fs         *vfs.Filesystem
	cwd        vfs.Path
	history    []string
	scrollback []Entry
}

// New creates a session starting from opts.FS (the seed tree if nil) in opts.Cwd
// (the home directory if nil).
func New(cfg config.ShellConfig, exec Executor, opts Options) *Session {
	s := &Session{
		id:       opts.ID,
		cfg:      cfg,
		exec:     exec,
		logger:   opts.Logger,
		observer: opts.Observer,
		fs:       opts.FS,
		cwd:      opts.Cwd,
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.With(zap.String("session_id", s.id))
	if s.fs == nil {
		s.fs = vfs.Seed()
	}
	if s.cwd == nil {
		s.cwd = append(vfs.Path{}, vfs.Home...)
	}
	s.observe(s.fs)

	s.logger.Info("session started", zap.String("cwd", s.cwd.String()))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Submit processes one command line. Only one line runs at a time; a concurrent
// call returns ErrBusy without touching any state.
func (s *Session) Submit(ctx context.Context, line string) (Outcome, error) {
	trimmed := strings.TrimSpace(line)

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	if trimmed == "" {
		s.mu.Unlock()
		return Outcome{}, nil
	}
	s.busy = true
	prompt := s.promptLocked()
	fs, cwd := s.fs, s.cwd
	s.pushHistoryLocked(trimmed)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	name := strings.ToLower(strings.Fields(trimmed)[0])
	switch name {
	case cmdClear:
		s.mu.Lock()
		s.scrollback = nil
		s.mu.Unlock()
		s.logger.Debug("scrollback cleared")
		return Outcome{Clear: true, Recorded: true}, nil
	case cmdHistory:
		out := s.formatHistory()
		s.record(Entry{Prompt: prompt, Command: trimmed, Output: out})
		return Outcome{Output: out, Recorded: true}, nil
	}

	res := s.exec.Execute(ctx, trimmed, fs, cwd)

	s.mu.Lock()
	if res.FS != nil {
		s.fs = res.FS
	}
	if res.Cwd != nil {
		s.cwd = *res.Cwd
	}
	s.mu.Unlock()

	if res.FS != nil {
		s.observe(res.FS)
	}
	if res.Cwd != nil {
		s.logger.Debug("working directory changed", zap.String("cwd", res.Cwd.String()))
	}

	s.record(Entry{Prompt: prompt, Command: trimmed, Output: res.Output})
	return Outcome{Output: res.Output, Recorded: true, Failed: res.Failed()}, nil
}

// Snapshot returns the current filesystem snapshot.
func (s *Session) Snapshot() *vfs.Filesystem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs
}

// Cwd returns a copy of the working directory.
func (s *Session) Cwd() vfs.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(vfs.Path{}, s.cwd...)
}

// Prompt renders the prompt shown before the next command.
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promptLocked()
}

func (s *Session) promptLocked() string {
	return fmt.Sprintf("%s@%s:%s$ ", s.cfg.User, s.cfg.Hostname, DisplayPath(s.cwd))
}

// DisplayPath renders p for the prompt, abbreviating the home directory to ~.
func DisplayPath(p vfs.Path) string {
	if p.HasPrefix(vfs.Home) {
		rest := p[len(vfs.Home):]
		if len(rest) == 0 {
			return "~"
		}
		return "~/" + strings.Join(rest, "/")
	}
	return p.String()
}

// Entries lists the children of the working directory in name order.
func (s *Session) Entries() []DirEntry {
	fs, cwd := s.Snapshot(), s.Cwd()

	n, err := fs.Locate(cwd)
	if err != nil {
		return nil
	}
	dir, ok := n.(*vfs.Directory)
	if !ok {
		return nil
	}

	entries := make([]DirEntry, 0, dir.Len())
	dir.Each(func(name string, child vfs.Node) bool {
		entries = append(entries, DirEntry{Name: name, IsDir: vfs.IsDir(child)})
		return true
	})
	return entries
}

// History returns the submitted command lines, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Scrollback returns the recorded entries, oldest first.
func (s *Session) Scrollback() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.scrollback...)
}

func (s *Session) pushHistoryLocked(line string) {
	s.history = append(s.history, line)
	if limit := s.cfg.HistoryLimit; limit > 0 && len(s.history) > limit {
		s.history = s.history[len(s.history)-limit:]
	}
}

func (s *Session) record(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollback = append(s.scrollback, e)
	if limit := s.cfg.ScrollbackLimit; limit > 0 && len(s.scrollback) > limit {
		s.scrollback = s.scrollback[len(s.scrollback)-limit:]
	}
}

func (s *Session) formatHistory() string {
	history := s.History()
	width := len(fmt.Sprint(len(history)))

	lines := make([]string, len(history))
	for i, line := range history {
		lines[i] = fmt.Sprintf("  %*d  %s", width, i+1, line)
	}
	return strings.Join(lines, "\n")
}

func (s *Session) observe(fs *vfs.Filesystem) {
	if s.observer == nil {
		return
	}
	s.observer.SetSnapshotNodes(fs.Root().Size())
}
