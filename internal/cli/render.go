package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/SeamusWaldron/cubestate/internal/cube"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// colorOutput reports whether stdout is a terminal.
func colorOutput() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var stickerStyles = func() map[cube.Color]lipgloss.Style {
	m := make(map[cube.Color]lipgloss.Style)
	for _, c := range []cube.Color{cube.NoColor, cube.White, cube.Yellow, cube.Green, cube.Blue, cube.Red, cube.Orange} {
		m[c] = lipgloss.NewStyle().
			Background(lipgloss.Color(c.Hex())).
			Foreground(lipgloss.Color("#000000"))
	}
	return m
}()

func sticker(c cube.Color, color bool) string {
	if !color {
		return c.String() + " "
	}
	return stickerStyles[c].Render(c.String() + " ")
}

// renderNet draws the unfolded cube with U above F and D below it.
func renderNet(fl cube.Facelets, color bool) string {
	var b strings.Builder
	pad := strings.Repeat(" ", 6)

	band := func(faces []cube.Face, row int) {
		for _, f := range faces {
			for col := 0; col < 3; col++ {
				b.WriteString(sticker(fl[f][row*3+col], color))
			}
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString(pad)
		band([]cube.Face{cube.U}, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		band([]cube.Face{cube.L, cube.F, cube.R, cube.B}, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(pad)
		band([]cube.Face{cube.D}, row)
		b.WriteString("\n")
	}
	return b.String()
}

// tail returns the last n tokens of a move list, prefixed with "..." when
// truncated.
func tail(tokens []string, n int) string {
	if len(tokens) <= n {
		return strings.Join(tokens, " ")
	}
	return "... " + strings.Join(tokens[len(tokens)-n:], " ")
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}

func msDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
