// Package app wires the renderer's intents to store operations and
// re-renders whenever the store reports a change.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/todo/internal/log"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/view"
)

var ErrMissingComponent = errors.New("app: missing component")

// Coordinator owns the session filter. It is never persisted.
type Coordinator struct {
	store       *store.Store
	view        *view.Renderer
	filter      model.Filter
	unsubscribe func()
}

// New binds every intent, subscribes to the store and draws the loaded list once.
func New(s *store.Store, r *view.Renderer, filter model.Filter) (*Coordinator, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: store is nil", ErrMissingComponent)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: renderer is nil", ErrMissingComponent)
	}
	if filter == "" {
		filter = model.FilterAll
	}
	c := &Coordinator{store: s, view: r, filter: filter}

	r.BindAdd(c.handleAdd)
	r.BindDelete(s.Delete)
	r.BindToggle(s.Toggle)
	r.BindToggleAll(s.ToggleAll)
	r.BindClearCompleted(s.ClearCompleted)
	r.BindEdit(c.handleEdit)
	r.BindFilter(c.SetFilter)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	c.unsubscribe = s.Subscribe(c.onChange)
	c.onChange(s.Items())
	return c, nil
}

func (c *Coordinator) Filter() model.Filter { return c.filter }

// SetFilter re-renders the full list under f.
func (c *Coordinator) SetFilter(f model.Filter) {
	log.Debug().Str("filter", string(f)).Msg("filter changed")
	c.filter = f
	c.onChange(c.store.Items())
}

// Close stops listening to the store.
func (c *Coordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Coordinator) onChange(items []model.Item) {
	c.view.Render(items, c.filter)
	c.view.RenderFooter(items)
}

func (c *Coordinator) handleAdd(text string) {
	if it, ok := c.store.Add(text); ok {
		log.Debug().Int("id", it.ID).Msg("added")
	}
}

func (c *Coordinator) handleEdit(id int, text string) {
	if strings.TrimSpace(text) == "" {
		c.store.Delete(id)
		return
	}
	c.store.Edit(id, text)
}
