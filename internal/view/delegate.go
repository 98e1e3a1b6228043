package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// rowDelegate draws one row per line: selection marker, box, label.
// The editing row shows the editor in place of its label.
type rowDelegate struct {
	r *Renderer
}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(Row)
	if !ok {
		return
	}
	t := d.r.theme

	prefix := "  "
	if index == m.Index() && d.r.focus == focusList {
		prefix = t.Selected.Render(">") + " "
	}
	box := t.Muted.Render(t.BoxUnchecked)
	// prefix + box + space take 6 cells at most
	label := ansi.Truncate(row.Text, max(m.Width()-6, 10), "…")
	if row.Done {
		box = t.Success.Render(t.BoxChecked)
		label = t.DoneText.Render(label)
	}
	if row.State == Editing {
		label = t.Editing.Render(d.r.editor.View())
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, label)
}
