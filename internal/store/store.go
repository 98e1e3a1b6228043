// Package store owns the todo list and its durable copy.
//
// Every mutation updates the in-memory list, writes the whole list to the
// backend, then calls each subscribed listener in registration order before
// returning. Invalid input (blank text) and unknown ids are silent no-ops.
//
// A Store is not safe for concurrent use; callers drive it from one goroutine.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/todo/internal/log"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store/kv"
)

const (
	ItemsKey  = "todos"
	NextIDKey = "todos.next_id"
)

// ErrCorrupt marks persisted state that failed to decode.
var ErrCorrupt = errors.New("persisted todos are corrupt")

// Listener receives the full, unfiltered list after each change.
// The slice is a copy owned by the listener.
type Listener func(items []model.Item)

type subscription struct {
	id int
	fn Listener
}

type Store struct {
	backend   kv.Backend
	items     []model.Item
	nextID    int
	listeners []subscription
	lastSubID int
	err       error
}

func New(backend kv.Backend) *Store {
	return &Store{backend: backend, items: []model.Item{}, nextID: 1}
}

// Init loads the persisted list. Absent or corrupt state yields an empty
// list; only backend read failures are returned.
func (s *Store) Init() error {
	items, next, err := s.load()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return err
	}
	if err != nil {
		log.Warn().Err(err).Msg("starting with an empty list")
	}
	s.items, s.nextID = items, next
	return nil
}

// Reload re-reads the backend and notifies listeners. Corrupt state leaves
// the current list untouched and returns an error wrapping ErrCorrupt.
func (s *Store) Reload() error {
	items, next, err := s.load()
	if err != nil {
		return err
	}
	if next < s.nextID {
		next = s.nextID
	}
	s.items, s.nextID = items, next
	s.notify()
	return nil
}

func (s *Store) load() ([]model.Item, int, error) {
	counter, err := s.loadCounter()
	if err != nil {
		return nil, 0, err
	}

	b, err := s.backend.Get(ItemsKey)
	if errors.Is(err, kv.ErrNotFound) {
		log.Debug().Str("key", ItemsKey).Msg("no persisted todos")
		return []model.Item{}, max(counter, 1), nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load %s: %w", ItemsKey, err)
	}

	items, err := decodeItems(b)
	if err != nil {
		return []model.Item{}, max(counter, 1), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	next := max(counter, 1)
	for _, it := range items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	log.Debug().Int("items", len(items)).Int("next_id", next).Msg("loaded todos")
	return items, next, nil
}

// loadCounter returns 0 when the counter was never written (data from
// before the counter existed) or is unreadable.
func (s *Store) loadCounter() (int, error) {
	b, err := s.backend.Get(NextIDKey)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", NextIDKey, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || n < 1 {
		log.Warn().Str("key", NextIDKey).Str("value", string(b)).Msg("ignoring invalid id counter")
		return 0, nil
	}
	return n, nil
}

// Subscribe appends fn to the listeners. The returned func removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.lastSubID++
	id := s.lastSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Items returns a copy of the current list in insertion order.
func (s *Store) Items() []model.Item { return model.Clone(s.items) }

// Find returns the item with id.
func (s *Store) Find(id int) (model.Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// NextID is the id the next Add will assign.
func (s *Store) NextID() int { return s.nextID }

// Err reports whether the last write failed. It is nil once a later
// write succeeds.
func (s *Store) Err() error { return s.err }

func (s *Store) Close() error { return s.backend.Close() }

// Add appends a new active item. Blank text is ignored.
func (s *Store) Add(text string) (model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	it := model.Item{ID: s.nextID, Text: text}
	s.nextID++
	s.items = append(s.items, it)
	s.commit()
	return it, true
}

// Edit replaces the text of id, keeping its done flag. Blank text deletes.
func (s *Store) Edit(id int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.Delete(id)
		return
	}
	i := s.index(id)
	if i < 0 {
		return
	}
	s.items[i] = model.Item{ID: id, Text: text, Done: s.items[i].Done}
	s.commit()
}

func (s *Store) Toggle(id int) {
	i := s.index(id)
	if i < 0 {
		return
	}
	old := s.items[i]
	s.items[i] = model.Item{ID: old.ID, Text: old.Text, Done: !old.Done}
	s.commit()
}

// ToggleAll sets done on every item.
func (s *Store) ToggleAll(done bool) {
	for i, it := range s.items {
		s.items[i] = model.Item{ID: it.ID, Text: it.Text, Done: done}
	}
	s.commit()
}

func (s *Store) Delete(id int) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.commit()
}

// ClearCompleted removes every done item.
func (s *Store) ClearCompleted() {
	s.items = model.Apply(s.items, model.FilterActive)
	s.commit()
}

func (s *Store) index(id int) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) commit() {
	// each write replaces everything, so a later success supersedes a failure
	s.err = s.persist()
	if s.err != nil {
		log.Error().Err(s.err).Msg("persist todos")
	}
	s.notify()
}

// persist writes the counter before the list so a partial failure can
// only skip ids, never hand one out twice.
func (s *Store) persist() error {
	if err := s.backend.Put(NextIDKey, []byte(strconv.Itoa(s.nextID))); err != nil {
		return fmt.Errorf("save %s: %w", NextIDKey, err)
	}
	b, err := encodeItems(s.items)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ItemsKey, b); err != nil {
		return fmt.Errorf("save %s: %w", ItemsKey, err)
	}
	return nil
}

func (s *Store) notify() {
	for _, sub := range s.listeners {
		sub.fn(model.Clone(s.items))
	}
}
