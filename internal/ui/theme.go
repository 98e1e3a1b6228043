package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Theme bundles palette + symbols + box borders.
// CLI helpers pull from `current`; the TUI gets its own copy.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, DoneText, Help, Editing             lipgloss.Style
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
	BoxUnchecked, BoxChecked                      string
	SymDone, SymPending, SymCross                 string
}

var current = mustTheme("classic")

// ThemeNames lists the accepted theme names.
var ThemeNames = []string{"classic", "neon", "mono"}

func ThemeByName(name string) (Theme, error) {
	plain := lipgloss.NewStyle()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		return Theme{
			Name:     "neon",
			Title:    plain.Bold(true).Foreground(lipgloss.Color("13")), // bright magenta
			Muted:    plain.Faint(true),
			Accent:   plain.Foreground(lipgloss.Color("14")),
			Success:  plain.Foreground(lipgloss.Color("10")),
			Error:    plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  plain.Foreground(lipgloss.Color("11")),
			Selected: plain.Bold(true).Foreground(lipgloss.Color("13")),
			DoneText: plain.Faint(true).Strikethrough(true),
			Help:     plain.Faint(true),
			Editing:  plain.Foreground(lipgloss.Color("14")),

			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("13"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•", SymCross: "✖",
		}, nil
	case "mono":
		return Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected: plain.Reverse(true),
			DoneText: plain.Strikethrough(true),
			Help:     plain, Editing: plain.Underline(true),

			Border: lipgloss.Border{
				Top: "-", Bottom: "-", Left: "|", Right: "|",
				TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
			},
			BorderColor:  lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-", SymCross: "!",
		}, nil
	case "", "classic":
		return Theme{
			Name:     "classic",
			Title:    plain.Bold(true),
			Muted:    plain.Faint(true),
			Accent:   plain.Foreground(lipgloss.Color("12")),
			Success:  plain.Foreground(lipgloss.Color("42")),
			Error:    plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  plain.Foreground(lipgloss.Color("214")),
			Selected: plain.Bold(true).Reverse(true),
			DoneText: plain.Faint(true).Strikethrough(true),
			Help:     plain.Faint(true),
			Editing:  plain.Foreground(lipgloss.Color("12")),

			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•", SymCross: "✖",
		}, nil
	}
	return Theme{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownTheme, name, strings.Join(ThemeNames, ", "))
}

func mustTheme(name string) Theme {
	t, err := ThemeByName(name)
	if err != nil {
		panic(err)
	}
	return t
}

// SetTheme switches the theme used by OK, Fail and Panel.
func SetTheme(name string) error {
	t, err := ThemeByName(name)
	if err != nil {
		return err
	}
	current = t
	return nil
}

// Expose what renderers need
func Current() Theme { return current }
