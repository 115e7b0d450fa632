package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const playHint = "Type 'help' for other commands."

var fortunes = []string{
	"The only way to do great work is to love what you do. - Steve Jobs",
	"In the middle of difficulty lies opportunity. - Albert Einstein",
	"Code is like humor. When you have to explain it, it's bad. - Cory House",
	"First, solve the problem. Then, write the code. - John Johnson",
	"Experience is the name everyone gives to their mistakes. - Oscar Wilde",
	"The best error message is the one that never shows up. - Thomas Fuchs",
	"Programming isn't about what you know; it's about what you can figure out. - Chris Pine",
	"Simplicity is the soul of efficiency. - Austin Freeman",
	"Any fool can write code that a computer can understand. Good programmers write code that humans can understand. - Martin Fowler",
	"Talk is cheap. Show me the code. - Linus Torvalds",
	"There are only two kinds of programming languages: those people always complain about and those nobody uses. - Bjarne Stroustrup",
	"Given enough eyeballs, all bugs are shallow. - Linus's Law",
}

var hangmanWords = []string{
	"golang", "terminal", "ubuntu", "linux", "goroutine",
	"channel", "developer", "computer", "keyboard", "algorithm",
}

const matrixGlyphs = "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789"

var matrixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

func (d *Dispatcher) fortune(_ context.Context, _ State, _ noArgs) Result {
	return output(fortunes[d.rand.IntN(len(fortunes))])
}

func (d *Dispatcher) cowsay(_ context.Context, _ State, args textArgs) Result {
	msg := args.Text
	if msg == "" {
		msg = "Moo!"
	}
	border := lipgloss.Width(msg) + 2

	lines := []string{
		" " + strings.Repeat("_", border),
		"< " + msg + " >",
		" " + strings.Repeat("-", border),
		`        \   ^__^`,
		`         \  (oo)\_______`,
		`            (__)\       )\/\`,
		`                ||----w |`,
		`                ||     ||`,
	}
	return output(strings.Join(lines, "\n"))
}

func (d *Dispatcher) cmatrix(_ context.Context, _ State, _ noArgs) Result {
	glyphs := []rune(matrixGlyphs)

	var b strings.Builder
	for range 15 {
		row := make([]rune, 60)
		for j := range row {
			row[j] = glyphs[d.rand.IntN(len(glyphs))]
		}
		b.WriteString(matrixStyle.Render(string(row)))
		b.WriteByte('\n')
	}
	b.WriteString("\n[Press Ctrl+C to exit in a real terminal]\n")
	b.WriteString("Matrix simulation displayed. In real cmatrix, this runs continuously.")
	return output(b.String())
}

func (d *Dispatcher) game2048(_ context.Context, _ State, _ noArgs) Result {
	var board [16]int
	cells := d.rand.Perm(len(board))
	for _, pos := range cells[:2] {
		board[pos] = 2
		if d.rand.Float64() >= 0.9 {
			board[pos] = 4
		}
	}

	var body []string
	for row := range 4 {
		var b strings.Builder
		for col := range 4 {
			cell := "·"
			if v := board[row*4+col]; v != 0 {
				cell = fmt.Sprint(v)
			}
			fmt.Fprintf(&b, "%4s  ", cell)
		}
		body = append(body, b.String())
	}
	body = append(body, sectionBreak,
		"Use arrow keys to move tiles",
		"Combine same numbers to reach 2048!",
		"Score: 0",
	)

	return output(box("2048 GAME", 38, body) + "\n\n" +
		"Note: This is a display demo. Full interactive 2048\n" +
		"requires a dedicated game mode.\n" + playHint)
}

func (d *Dispatcher) guess(_ context.Context, _ State, _ noArgs) Result {
	secret := d.rand.IntN(100) + 1
	hint := "is 50 or less"
	if secret > 50 {
		hint = "is greater than 50"
	}

	lines := []string{
		"NUMBER GUESSING GAME",
		strings.Repeat("═", 39),
		"I'm thinking of a number between 1 and 100.",
		"",
		fmt.Sprintf("The secret number is: %d", secret),
		"",
		"In a full implementation, you would type guesses",
		`and I would tell you "higher" or "lower".`,
		"",
		fmt.Sprintf("Here's a hint: The number %s.", hint),
		"",
		"To play interactively, this would require game mode.",
		"For now, the answer was revealed above!",
		"",
		playHint,
	}
	return output(strings.Join(lines, "\n"))
}

func (d *Dispatcher) tictactoe(_ context.Context, _ State, _ noArgs) Result {
	board := [9]string{" ", " ", " ", " ", " ", " ", " ", " ", " "}
	board[d.rand.IntN(len(board))] = "X"

	row := func(i int) string {
		return fmt.Sprintf("     %s │ %s │ %s", board[i], board[i+1], board[i+2])
	}
	const rule = "    ───┼───┼───"

	body := []string{
		"",
		row(0), rule, row(3), rule, row(6),
		"",
		"You are X, Computer is O",
		"Enter position (1-9) to play",
		"",
		"Position map:",
		" 1 │ 2 │ 3",
		"───┼───┼───",
		" 4 │ 5 │ 6",
		"───┼───┼───",
		" 7 │ 8 │ 9",
		"",
	}
	return output(box("TIC TAC TOE", 38, body) + "\n\nInteractive mode coming soon!\n" + playHint)
}

func (d *Dispatcher) hangman(_ context.Context, _ State, _ noArgs) Result {
	word := hangmanWords[d.rand.IntN(len(hangmanWords))]
	revealed := strings.TrimSpace(strings.Repeat("_ ", len(word)))

	body := []string{
		"",
		"   ┌──────┐",
		"   │      │",
		"   │      O",
		`   │     /|\`,
		`   │     / \`,
		"   │",
		"═══╧═══",
		"",
		"Word: " + revealed,
		"Letters guessed: none",
		"",
		fmt.Sprintf("Hint: It's a %d-letter word!", len(word)),
		"The word was: " + word,
		"",
	}
	return output(box("HANGMAN WORD GAME", 38, body) + "\n\nInteractive mode coming soon!\n" + playHint)
}

func (d *Dispatcher) snake(_ context.Context, _ State, _ noArgs) Result {
	const cols, rows = 20, 8
	snakeRow, snakeCol := d.rand.IntN(rows), d.rand.IntN(cols-4)
	foodRow, foodCol := d.rand.IntN(rows), d.rand.IntN(cols)
	if foodRow == snakeRow {
		foodRow = (foodRow + 1) % rows
	}

	body := []string{"┌" + strings.Repeat("─", cols*2+1) + "┐"}
	for r := range rows {
		var b strings.Builder
		b.WriteString("│")
		for c := range cols {
			switch {
			case r == snakeRow && c >= snakeCol && c < snakeCol+4:
				b.WriteString(" █")
			case r == foodRow && c == foodCol:
				b.WriteString(" ●")
			default:
				b.WriteString(" ·")
			}
		}
		b.WriteString(" │")
		body = append(body, b.String())
	}
	body = append(body,
		"└"+strings.Repeat("─", cols*2+1)+"┘",
		"",
		"Controls: ↑ ↓ ← → (Arrow Keys)",
		"Score: 0  |  High Score: 42",
		"● = Food  |  ████ = Snake",
	)

	return output(box("SNAKE GAME", 48, body) + "\n\n" +
		"Welcome to Snake!\n" +
		"Use arrow keys to control the snake.\n" +
		"Eat the food (●) to grow longer.\n" +
		"Don't hit the walls or yourself!\n\n" +
		"Interactive game mode coming soon!\n" + playHint)
}

// sectionBreak inside a box body draws a horizontal divider.
const sectionBreak = "\x00"

// box frames body lines in a double-line border with a centred title.
func box(title string, inner int, body []string) string {
	for _, line := range append([]string{title}, body...) {
		inner = max(inner, lipgloss.Width(line)+4)
	}
	bar := strings.Repeat("═", inner)
	pad := func(s string, left int) string {
		return "║" + strings.Repeat(" ", left) + s + strings.Repeat(" ", inner-left-lipgloss.Width(s)) + "║"
	}

	lines := []string{
		"╔" + bar + "╗",
		pad(title, (inner-lipgloss.Width(title))/2),
		"╠" + bar + "╣",
	}
	for _, line := range body {
		if line == sectionBreak {
			lines = append(lines, "╠"+bar+"╣")
			continue
		}
		lines = append(lines, pad(line, 2))
	}
	lines = append(lines, "╚"+bar+"╝")
	return strings.Join(lines, "\n")
}
