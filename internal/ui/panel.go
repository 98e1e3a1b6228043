package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func OK(msg string) { fmt.Println(current.Success.Render(current.SymDone + " " + msg)) }
func Fail(msg string) {
	fmt.Fprintln(os.Stderr, current.Error.Render(current.SymCross+" "+msg))
}

// Hint prints a muted follow-up line to stderr.
func Hint(msg string) { fmt.Fprintln(os.Stderr, current.Muted.Render(msg)) }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Frame wraps inner in the theme's border.
func (t Theme) Frame(inner string) string {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	fmt.Println(current.Frame(strings.Join(lines, "\n")))
}
