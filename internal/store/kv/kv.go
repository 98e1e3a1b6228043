// Package kv defines the string-keyed byte store the todo store persists into.
package kv

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when a key was never written.
var ErrNotFound = errors.New("kv: key not found")

// Backend is a durable string-keyed store. Put overwrites wholesale.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Memory is a process-local Backend, used for tests and `-storage memory`.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }
