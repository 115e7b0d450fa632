package shell

import (
	"strings"
	"testing"

	"github.com/Cyclone1070/vsh/internal/vfs"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCowsay(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	t.Run("default message", func(t *testing.T) {
		out := run(d, vfs.Seed(), "cowsay").Output

		lines := strings.Split(out, "\n")
		assert.Equal(t, " ______", lines[0])
		assert.Equal(t, "< Moo! >", lines[1])
		assert.Equal(t, " ------", lines[2])
		assert.Contains(t, out, "(oo)")
	})

	t.Run("joins arguments", func(t *testing.T) {
		out := run(d, vfs.Seed(), "cowsay hello  there").Output

		assert.Contains(t, out, "< hello there >")
	})
}

func TestFortune_FromList(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	for range 20 {
		out := run(d, vfs.Seed(), "fortune").Output
		assert.Contains(t, fortunes, out)
	}
}

func TestHangman_RevealsWord(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	out := run(d, vfs.Seed(), "hangman").Output

	found := false
	for _, w := range hangmanWords {
		if strings.Contains(out, "The word was: "+w) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGuess_HintMatchesSecret(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	out := run(d, vfs.Seed(), "guess").Output

	assert.Contains(t, out, "The secret number is: ")
	assert.True(t, strings.Contains(out, "is greater than 50") || strings.Contains(out, "is 50 or less"))
}

func TestGames_AreFramed(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	for _, name := range []string{"2048", "tictactoe", "hangman", "snake"} {
		t.Run(name, func(t *testing.T) {
			out := run(d, vfs.Seed(), name).Output

			frame, _, ok := strings.Cut(out, "\n\n")
			require.True(t, ok)
			lines := strings.Split(frame, "\n")
			width := lipgloss.Width(lines[0])
			for _, line := range lines {
				assert.Equal(t, width, lipgloss.Width(line), "ragged line %q", line)
			}
			assert.True(t, strings.HasSuffix(out, playHint))
		})
	}
}

func Test2048_PlacesTwoTiles(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	out := run(d, vfs.Seed(), "2048").Output

	tiles := strings.Count(out, " 2 ") + strings.Count(out, " 4 ")
	assert.Equal(t, 2, tiles)
}

func TestCmatrix(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	out := run(d, vfs.Seed(), "cmatrix").Output

	assert.Contains(t, out, "Matrix simulation displayed")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 15)
}

func TestBox_PadsToWidestLine(t *testing.T) {
	out := box("T", 4, []string{"a much longer line", sectionBreak, "x"})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 7)
	for _, line := range lines {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(line))
	}
	assert.True(t, strings.HasPrefix(lines[4], "╠"))
}
