package app

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/store/kv"
	"github.com/idilsaglam/todo/internal/view"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func setup(t *testing.T, mem *kv.Memory) (*Coordinator, *store.Store, *view.Renderer) {
	t.Helper()
	if mem == nil {
		mem = kv.NewMemory()
	}
	s := store.New(mem)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	r, err := view.New(view.Options{Theme: "mono"})
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	c, err := New(s, r, model.FilterAll)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c, s, r
}

func send(t *testing.T, r *view.Renderer, keys ...string) {
	t.Helper()
	for _, k := range keys {
		r.HandleKey(keyMsg(k))
	}
}

func typeText(t *testing.T, r *view.Renderer, s string) {
	t.Helper()
	for _, c := range s {
		r.HandleKey(keyMsg(string(c)))
	}
}

func ids(rows []view.Row) string {
	var out []int
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return fmt.Sprint(out)
}

func TestNewRequiresComponents(t *testing.T) {
	r, _ := view.New(view.Options{})
	_, err := New(nil, r, model.FilterAll)
	if !errors.Is(err, ErrMissingComponent) || err.Error() != "app: missing component: store is nil" {
		t.Fatalf("nil store: err = %v", err)
	}
	s := store.New(kv.NewMemory())
	_, err = New(s, nil, model.FilterAll)
	if !errors.Is(err, ErrMissingComponent) || err.Error() != "app: missing component: renderer is nil" {
		t.Fatalf("nil renderer: err = %v", err)
	}
}

func TestInitialRenderUsesLoadedList(t *testing.T) {
	mem := kv.NewMemory()
	if err := mem.Put(store.ItemsKey, []byte(`[{"id":1,"text":"a","done":true},{"id":2,"text":"b","done":false}]`)); err != nil {
		t.Fatal(err)
	}
	_, _, r := setup(t, mem)

	if got := ids(r.Rows()); got != "[1 2]" {
		t.Fatalf("rows = %s", got)
	}
	if f := r.Footer(); f.Active != 1 || !f.ShowClear {
		t.Fatalf("footer = %+v", f)
	}
}

func TestScenarioThroughTheUI(t *testing.T) {
	c, s, r := setup(t, nil)

	typeText(t, r, "buy milk")
	send(t, r, "enter")
	if got := s.Items(); len(got) != 1 || got[0] != (model.Item{ID: 1, Text: "buy milk"}) {
		t.Fatalf("items = %+v", got)
	}
	if len(r.Rows()) != 1 {
		t.Fatalf("rows not re-rendered: %+v", r.Rows())
	}

	send(t, r, "tab", " ")
	if it, _ := s.Find(1); !it.Done {
		t.Fatal("toggle did not reach the store")
	}

	send(t, r, "n")
	typeText(t, r, "buy eggs")
	send(t, r, "enter")

	send(t, r, "tab", "2")
	if c.Filter() != model.FilterActive {
		t.Fatalf("filter = %s", c.Filter())
	}
	if got := ids(r.Rows()); got != "[2]" {
		t.Fatalf("active rows = %s, want [2]", got)
	}
	if f := r.Footer(); f.Active != 1 || f.Completed != 1 {
		t.Fatalf("footer counts the filtered list: %+v", f)
	}

	send(t, r, "C")
	if got := s.Items(); len(got) != 1 || got[0] != (model.Item{ID: 2, Text: "buy eggs"}) {
		t.Fatalf("items after clear = %+v", got)
	}
}

func TestEditToEmptyDeletes(t *testing.T) {
	_, s, r := setup(t, nil)
	s.Add("a")
	s.Add("b")

	send(t, r, "tab", "e")
	for i := 0; i < len("a"); i++ {
		send(t, r, "backspace")
	}
	send(t, r, "enter")

	if got := s.Items(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("items = %+v, want only id 2", got)
	}
}

func TestEditThroughTheUI(t *testing.T) {
	_, s, r := setup(t, nil)
	s.Add("a")

	send(t, r, "tab", "e")
	typeText(t, r, "bc")
	send(t, r, "enter")
	if it, _ := s.Find(1); it.Text != "abc" {
		t.Fatalf("text = %q", it.Text)
	}
	if _, editing := r.Editing(); editing {
		t.Fatal("row still editing")
	}
}

func TestToggleAllAndDelete(t *testing.T) {
	_, s, r := setup(t, nil)
	s.Add("a")
	s.Add("b")

	send(t, r, "tab", "A")
	for _, it := range s.Items() {
		if !it.Done {
			t.Fatalf("item %d not done after toggle-all", it.ID)
		}
	}
	send(t, r, "A")
	for _, it := range s.Items() {
		if it.Done {
			t.Fatalf("item %d still done after second toggle-all", it.ID)
		}
	}

	send(t, r, "d")
	if got := s.Items(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("items = %+v", got)
	}
	if row, _ := r.Selected(); row.ID != 2 {
		t.Fatalf("selection = %d, want 2", row.ID)
	}
}

func TestFilterIsNotPersisted(t *testing.T) {
	mem := kv.NewMemory()
	c, s, _ := setup(t, mem)
	s.Add("a")
	c.SetFilter(model.FilterCompleted)

	_, _, r2 := setup(t, mem)
	if r2.Filter() != model.FilterAll {
		t.Fatalf("new session filter = %s, want all", r2.Filter())
	}
}

func TestCloseStopsRendering(t *testing.T) {
	c, s, r := setup(t, nil)
	c.Close()
	s.Add("a")
	if len(r.Rows()) != 0 {
		t.Fatalf("renderer updated after Close: %+v", r.Rows())
	}
}
