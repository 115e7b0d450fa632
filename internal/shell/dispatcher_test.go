package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/vsh/internal/metrics"
	"github.com/Cyclone1070/vsh/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_EmptyLine(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	for _, line := range []string{"", "   ", "\t"} {
		res := run(d, vfs.Seed(), line)
		assert.Equal(t, Result{}, res)
	}
}

func TestExecute_CommandNameIsCaseInsensitive(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	res := run(d, vfs.Seed(), "  PWD  ")

	assert.Equal(t, "/home/user", res.Output)
}

func TestExecute_UnknownCommand_UsesResolver(t *testing.T) {
	resolver := &MockResolver{
		ResolveFunc: func(_ context.Context, line string) (string, error) {
			return "Hello from apt", nil
		},
	}
	recorder := &MockRecorder{}
	d := newTestDispatcher(t, Options{Resolver: resolver, Recorder: recorder})

	res := run(d, vfs.Seed(), "  sudo apt   update ")

	assert.Equal(t, "Hello from apt", res.Output)
	assert.Nil(t, res.FS)
	assert.Nil(t, res.Cwd)
	assert.Equal(t, []string{"sudo apt   update"}, resolver.Lines)
	assert.Equal(t, []string{metrics.OutcomeOK}, recorder.Fallbacks)
	assert.Equal(t, []observation{{command: fallbackLabel, outcome: metrics.OutcomeOK}}, recorder.Commands)
}

func TestExecute_UnknownCommand_NoResolver(t *testing.T) {
	recorder := &MockRecorder{}
	d := newTestDispatcher(t, Options{Recorder: recorder})

	res := run(d, vfs.Seed(), "htop")

	assert.Equal(t, NotConfiguredMessage, res.Output)
	assert.True(t, res.Failed())
	assert.Equal(t, []string{metrics.OutcomeError}, recorder.Fallbacks)
}

func TestExecute_UnknownCommand_ResolverError(t *testing.T) {
	resolver := &MockResolver{
		ResolveFunc: func(context.Context, string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	d := newTestDispatcher(t, Options{Resolver: resolver})

	res := run(d, vfs.Seed(), "htop")

	assert.Equal(t, "Error: quota exceeded", res.Output)
	assert.Nil(t, res.FS)
	assert.Nil(t, res.Cwd)
}

func TestExecute_UnavailableResolver(t *testing.T) {
	d := newTestDispatcher(t, Options{Resolver: UnavailableResolver{Err: errors.New("no client")}})

	res := run(d, vfs.Seed(), "htop")

	assert.Equal(t, "Error: no client", res.Output)
}

func TestExecute_RecordsOutcome(t *testing.T) {
	recorder := &MockRecorder{}
	d := newTestDispatcher(t, Options{Recorder: recorder})

	run(d, vfs.Seed(), "ls")
	run(d, vfs.Seed(), "cd nowhere")

	require.Len(t, recorder.Commands, 2)
	assert.Equal(t, observation{command: "ls", outcome: metrics.OutcomeOK}, recorder.Commands[0])
	assert.Equal(t, observation{command: "cd", outcome: metrics.OutcomeError}, recorder.Commands[1])
}

func TestExecute_RendererPanicIsContained(t *testing.T) {
	renderer := &MockRenderer{
		RenderFunc: func(string, int) (string, error) { panic("boom") },
	}
	d := newTestDispatcher(t, Options{Renderer: renderer})

	res := run(d, vfs.Seed(), "glow README.md")

	assert.Equal(t, "glow: internal error", res.Output)
	assert.True(t, res.Failed())
}

func TestExecute_NeverMutatesInput(t *testing.T) {
	d := newTestDispatcher(t, Options{})
	fs := vfs.Seed()
	before := fs.Root()

	lines := []string{"mkdir a", "touch b", "cd Projects", "mkdir /home/user/Projects/c", "touch README.md"}
	for _, line := range lines {
		run(d, fs, line)
	}

	assert.Same(t, before, fs.Root())
	assert.True(t, vfs.Equal(vfs.Seed().Root(), fs.Root()))
}

func TestCommands_Registered(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	names := d.Commands()

	for _, want := range []string{"cat", "cd", "ls", "mkdir", "pwd", "touch", "help", "tree", "find", "glow", "cowsay", "2048"} {
		assert.Contains(t, names, want)
	}
	assert.NotContains(t, names, "clear")
	assert.IsNonDecreasing(t, names)
}

func TestBindArgs(t *testing.T) {
	bound := bindArgs([]string{"path", "other"}, []string{"a", "b", "c"})

	assert.Equal(t, "a", bound["path"])
	assert.Equal(t, "b", bound["other"])
	assert.Equal(t, "a b c", bound["text"])
	assert.Equal(t, []string{"a", "b", "c"}, bound["args"])
}
