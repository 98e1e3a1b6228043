package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/log"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/view"
)

// storeChangedMsg arrives when another process rewrote the persisted list.
type storeChangedMsg struct{}

// Program is the Bubble Tea model around a Coordinator.
type Program struct {
	coord   *Coordinator
	store   *store.Store
	view    *view.Renderer
	changes <-chan struct{}
}

// NewProgram builds the TUI model. changes may be nil to disable reloads.
func NewProgram(c *Coordinator, changes <-chan struct{}) Program {
	return Program{coord: c, store: c.store, view: c.view, changes: changes}
}

func (p Program) Init() tea.Cmd {
	return waitForChange(p.changes)
}

func (p Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.view.SetSize(msg.Width, msg.Height)
		return p, nil
	case tea.KeyMsg:
		return p, p.view.HandleKey(msg)
	case storeChangedMsg:
		if err := p.store.Reload(); err != nil {
			if errors.Is(err, store.ErrCorrupt) {
				log.Warn().Err(err).Msg("ignoring external change")
			} else {
				log.Error().Err(err).Msg("reload")
			}
		}
		return p, waitForChange(p.changes)
	}
	return p, nil
}

func (p Program) View() string {
	return p.view.View()
}

// Run blocks until the user quits.
func (p Program) Run() error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}
