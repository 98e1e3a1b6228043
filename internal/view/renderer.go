// Package view renders the todo list and turns key presses into intents.
//
// The Renderer never touches the store. Each user action raises exactly one
// intent through the handler bound for it; the coordinator decides what the
// intent does and calls Render/RenderFooter once the list has changed.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
)

// ErrUnbound is returned by Validate when an intent has no handler.
var ErrUnbound = errors.New("view: intent has no handler")

// RowState is the per-row edit state.
type RowState int

const (
	Idle RowState = iota
	Editing
)

// Row is one displayed item, keyed by the item id.
type Row struct {
	ID    int
	Text  string
	Done  bool
	State RowState
}

// FilterValue implements list.Item.
func (r Row) FilterValue() string { return r.Text }

// Footer is the summary line, always computed over the unfiltered list.
type Footer struct {
	Visible   bool
	Active    int
	Completed int
	ShowClear bool
	Filter    model.Filter
}

type Options struct {
	Theme       string
	Placeholder string
	Width       int
	Height      int
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type Renderer struct {
	theme  ui.Theme
	keys   keyMap
	help   help.Model
	input  textinput.Model
	editor textinput.Model
	list   list.Model

	filter  model.Filter
	footer  Footer
	total   int
	allDone bool
	focus   focusArea

	width, height int

	onAdd            func(text string)
	onDelete         func(id int)
	onToggle         func(id int)
	onToggleAll      func(done bool)
	onClearCompleted func()
	onEdit           func(id int, text string)
	onFilter         func(f model.Filter)
}

// New builds a Renderer. An unknown theme is an error so misconfiguration
// stops startup instead of surfacing on first draw.
func New(opts Options) (*Renderer, error) {
	theme, err := ui.ThemeByName(opts.Theme)
	if err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	if opts.Placeholder == "" {
		opts.Placeholder = "What needs to be done?"
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	r := &Renderer{
		theme:  theme,
		keys:   defaultKeyMap(),
		help:   help.New(),
		filter: model.FilterAll,
		focus:  focusInput,
	}

	r.input = textinput.New()
	r.input.Prompt = "❯ "
	r.input.Placeholder = opts.Placeholder
	r.input.CharLimit = 200
	r.input.Focus()

	r.editor = textinput.New()
	r.editor.Prompt = ""
	r.editor.CharLimit = 200

	l := list.New(nil, rowDelegate{r: r}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.NoItems = theme.Muted.PaddingLeft(2)
	l.Styles.PaginationStyle = theme.Help.PaddingLeft(2)
	r.list = l

	r.help.Styles.ShortKey = theme.Accent
	r.help.Styles.ShortDesc = theme.Help
	r.help.Styles.ShortSeparator = theme.Help

	r.SetSize(opts.Width, opts.Height)
	return r, nil
}

func (r *Renderer) BindAdd(fn func(text string))       { r.onAdd = fn }
func (r *Renderer) BindDelete(fn func(id int))         { r.onDelete = fn }
func (r *Renderer) BindToggle(fn func(id int))         { r.onToggle = fn }
func (r *Renderer) BindToggleAll(fn func(done bool))   { r.onToggleAll = fn }
func (r *Renderer) BindClearCompleted(fn func())       { r.onClearCompleted = fn }
func (r *Renderer) BindEdit(fn func(id int, t string)) { r.onEdit = fn }
func (r *Renderer) BindFilter(fn func(f model.Filter)) { r.onFilter = fn }

// Validate reports every intent that has no handler.
func (r *Renderer) Validate() error {
	var missing []string
	check := func(name string, bound bool) {
		if !bound {
			missing = append(missing, name)
		}
	}
	check("add", r.onAdd != nil)
	check("delete", r.onDelete != nil)
	check("toggle", r.onToggle != nil)
	check("toggle-all", r.onToggleAll != nil)
	check("clear-completed", r.onClearCompleted != nil)
	check("edit", r.onEdit != nil)
	check("filter", r.onFilter != nil)
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnbound, strings.Join(missing, ", "))
	}
	return nil
}

// Render rebuilds every row from items under filter. The row being edited
// and the selection carry over by id when they survive the filter.
func (r *Renderer) Render(items []model.Item, filter model.Filter) {
	r.filter = filter
	r.footer.Filter = filter

	editingID, wasEditing := 0, false
	if row, _, ok := r.editingRow(); ok {
		editingID, wasEditing = row.ID, true
	}
	selectedID := -1
	if row, ok := r.Selected(); ok {
		selectedID = row.ID
	}

	rows := make([]list.Item, 0, len(items))
	sel, stillEditing := -1, false
	for _, it := range items {
		if !filter.Match(it) {
			continue
		}
		row := Row{ID: it.ID, Text: it.Text, Done: it.Done}
		if wasEditing && it.ID == editingID {
			row.State = Editing
			stillEditing = true
		}
		if it.ID == selectedID {
			sel = len(rows)
		}
		rows = append(rows, row)
	}

	prev := r.list.Index()
	r.list.SetItems(rows)
	switch {
	case sel >= 0:
		r.list.Select(sel)
	case prev >= len(rows):
		r.list.Select(max(len(rows)-1, 0))
	default:
		r.list.Select(prev)
	}

	if wasEditing && !stillEditing {
		r.editor.Blur()
		r.editor.Reset()
	}
}

// RenderFooter updates counts and visibility from the unfiltered list.
func (r *Renderer) RenderFooter(all []model.Item) {
	done, active := model.Counts(all)
	r.total = len(all)
	r.allDone = len(all) > 0 && active == 0
	r.footer = Footer{
		Visible:   len(all) > 0,
		Active:    active,
		Completed: done,
		ShowClear: done > 0,
		Filter:    r.filter,
	}
	if r.total == 0 && r.focus == focusList {
		r.focusInput()
	}
}

func (r *Renderer) Rows() []Row {
	items := r.list.Items()
	out := make([]Row, 0, len(items))
	for _, it := range items {
		if row, ok := it.(Row); ok {
			out = append(out, row)
		}
	}
	return out
}

func (r *Renderer) Footer() Footer       { return r.footer }
func (r *Renderer) Filter() model.Filter { return r.filter }
func (r *Renderer) AllDone() bool        { return r.allDone }
func (r *Renderer) InputValue() string   { return r.input.Value() }
func (r *Renderer) ListFocused() bool    { return r.focus == focusList }

// Selected returns the row under the cursor.
func (r *Renderer) Selected() (Row, bool) {
	row, ok := r.list.SelectedItem().(Row)
	return row, ok
}

// Editing returns the id of the row being edited.
func (r *Renderer) Editing() (int, bool) {
	row, _, ok := r.editingRow()
	return row.ID, ok
}

func (r *Renderer) editingRow() (Row, int, bool) {
	for i, it := range r.list.Items() {
		if row, ok := it.(Row); ok && row.State == Editing {
			return row, i, true
		}
	}
	return Row{}, -1, false
}

func (r *Renderer) SetSize(w, h int) {
	r.width, r.height = w, h
	r.input.Width = max(w-12, 10)
	r.editor.Width = max(w-16, 10)
	r.help.Width = max(w-4, 10)
	// frame(2) + title, input, blank, mark-all, footer, blank, help
	r.list.SetSize(max(w-4, 10), max(h-9, 1))
}

// HandleKey maps a key press to at most one intent.
func (r *Renderer) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, r.keys.ForceQuit) {
		return tea.Quit
	}
	if row, idx, ok := r.editingRow(); ok {
		return r.handleEditKey(msg, row, idx)
	}
	if r.focus == focusInput {
		return r.handleInputKey(msg)
	}
	return r.handleListKey(msg)
}

func (r *Renderer) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, r.keys.Submit):
		text := r.input.Value()
		if text == "" {
			return nil
		}
		r.input.Reset()
		if r.onAdd != nil {
			r.onAdd(text)
		}
		return nil
	case key.Matches(msg, r.keys.ToList):
		if r.total > 0 {
			r.input.Blur()
			r.focus = focusList
		}
		return nil
	}
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return cmd
}

func (r *Renderer) handleListKey(msg tea.KeyMsg) tea.Cmd {
	row, hasRow := r.Selected()
	switch {
	case key.Matches(msg, r.keys.Quit):
		return tea.Quit
	case key.Matches(msg, r.keys.Up):
		r.list.CursorUp()
	case key.Matches(msg, r.keys.Down):
		r.list.CursorDown()
	case key.Matches(msg, r.keys.ToInput):
		return r.focusInput()
	case key.Matches(msg, r.keys.Toggle):
		if hasRow && r.onToggle != nil {
			r.onToggle(row.ID)
		}
	case key.Matches(msg, r.keys.Delete):
		if hasRow && r.onDelete != nil {
			r.onDelete(row.ID)
		}
	case key.Matches(msg, r.keys.Edit):
		if hasRow {
			return r.startEdit(r.list.Index())
		}
	case key.Matches(msg, r.keys.ToggleAll):
		if r.total > 0 && r.onToggleAll != nil {
			r.onToggleAll(!r.allDone)
		}
	case key.Matches(msg, r.keys.ClearCompleted):
		if r.footer.ShowClear && r.onClearCompleted != nil {
			r.onClearCompleted()
		}
	case key.Matches(msg, r.keys.FilterAll):
		r.changeFilter(model.FilterAll)
	case key.Matches(msg, r.keys.FilterActive):
		r.changeFilter(model.FilterActive)
	case key.Matches(msg, r.keys.FilterDone):
		r.changeFilter(model.FilterCompleted)
	case key.Matches(msg, r.keys.CycleFilter):
		r.changeFilter(r.filter.Next())
	case key.Matches(msg, r.list.KeyMap.NextPage, r.list.KeyMap.PrevPage,
		r.list.KeyMap.GoToStart, r.list.KeyMap.GoToEnd):
		var cmd tea.Cmd
		r.list, cmd = r.list.Update(msg)
		return cmd
	}
	return nil
}

// idle -> editing
func (r *Renderer) startEdit(idx int) tea.Cmd {
	row, ok := r.list.Items()[idx].(Row)
	if !ok {
		return nil
	}
	row.State = Editing
	r.list.SetItem(idx, row)
	r.editor.SetValue(row.Text)
	r.editor.CursorEnd()
	return r.editor.Focus()
}

// editing -> idle; returns the edited text
func (r *Renderer) stopEdit(row Row, idx int) string {
	text := r.editor.Value()
	row.State = Idle
	r.list.SetItem(idx, row)
	r.editor.Blur()
	r.editor.Reset()
	return text
}

func (r *Renderer) handleEditKey(msg tea.KeyMsg, row Row, idx int) tea.Cmd {
	switch {
	case key.Matches(msg, r.keys.Save):
		r.commitEdit(row, idx)
		return nil
	case key.Matches(msg, r.keys.Cancel):
		r.stopEdit(row, idx)
		return nil
	case key.Matches(msg, r.keys.Up, r.keys.Down, r.keys.ToInput) && isBlurKey(msg):
		// moving away loses focus, which commits like enter
		r.commitEdit(row, idx)
		return r.handleListKey(msg)
	}
	var cmd tea.Cmd
	r.editor, cmd = r.editor.Update(msg)
	return cmd
}

func (r *Renderer) commitEdit(row Row, idx int) {
	text := r.stopEdit(row, idx)
	if r.onEdit != nil {
		r.onEdit(row.ID, text)
	}
}

// letters like j/k/n/i are text while editing; only non-printing keys blur
func isBlurKey(msg tea.KeyMsg) bool {
	return msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace
}

func (r *Renderer) changeFilter(f model.Filter) {
	if r.onFilter != nil {
		r.onFilter(f)
	}
}

func (r *Renderer) focusInput() tea.Cmd {
	r.focus = focusInput
	return r.input.Focus()
}

// View draws the whole screen.
func (r *Renderer) View() string {
	t := r.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("todos"))
	b.WriteString("\n")
	b.WriteString(r.input.View())
	b.WriteString("\n")

	if r.total > 0 {
		b.WriteString("\n")
		box := t.Muted.Render(t.BoxUnchecked)
		if r.allDone {
			box = t.Success.Render(t.BoxChecked)
		}
		b.WriteString("  " + box + " " + t.Muted.Render("Mark all as complete"))
		b.WriteString("\n")
		b.WriteString(r.list.View())
		b.WriteString("\n")
	}
	if r.footer.Visible {
		b.WriteString(r.footerView())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.help.ShortHelpView(r.helpBindings()))
	return t.Frame(b.String())
}

func (r *Renderer) footerView() string {
	t := r.theme
	unit := "items"
	if r.footer.Active == 1 {
		unit = "item"
	}
	parts := []string{t.Pending.Render(fmt.Sprintf("%d %s left", r.footer.Active, unit))}

	filters := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		if f == r.footer.Filter {
			filters = append(filters, t.Accent.Underline(true).Render(f.Label()))
		} else {
			filters = append(filters, t.Muted.Render(f.Label()))
		}
	}
	parts = append(parts, strings.Join(filters, " "))

	if r.footer.ShowClear {
		parts = append(parts, t.Muted.Render("Clear completed"))
	}
	return strings.Join(parts, "   ")
}

func (r *Renderer) helpBindings() []key.Binding {
	if _, ok := r.Editing(); ok {
		return r.keys.editHelp()
	}
	if r.focus == focusInput {
		return r.keys.inputHelp()
	}
	return r.keys.listHelp()
}
