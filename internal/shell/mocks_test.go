package shell

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/vsh/internal/vfs"
)

// MockResolver implements Resolver for testing.
type MockResolver struct {
	ResolveFunc func(ctx context.Context, line string) (string, error)
	Lines       []string
}

func (m *MockResolver) Resolve(ctx context.Context, line string) (string, error) {
	m.Lines = append(m.Lines, line)
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, line)
	}
	return "", nil
}

// MockRenderer implements MarkdownRenderer for testing.
type MockRenderer struct {
	RenderFunc func(content string, width int) (string, error)
}

func (m *MockRenderer) Render(content string, width int) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(content, width)
	}
	return content, nil
}

type observation struct {
	command string
	outcome string
}

// MockRecorder captures metrics calls.
type MockRecorder struct {
	mu        sync.Mutex
	Commands  []observation
	Fallbacks []string
}

func (m *MockRecorder) ObserveCommand(command, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = append(m.Commands, observation{command: command, outcome: outcome})
}

func (m *MockRecorder) ObserveFallback(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fallbacks = append(m.Fallbacks, outcome)
}

var fixedNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func newTestDispatcher(t *testing.T, opts Options) *Dispatcher {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewDispatcher(opts)
}

// run executes line against fs from the home directory.
func run(d *Dispatcher, fs *vfs.Filesystem, line string) Result {
	return d.Execute(context.Background(), line, fs, vfs.Home)
}
