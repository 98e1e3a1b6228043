package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/store/kv"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestGetMissingKey(t *testing.T) {
	s, _ := openTemp(t)
	_, err := s.Get("todos")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestPutOverwrites(t *testing.T) {
	s, _ := openTemp(t)

	require.NoError(t, s.Put("todos", []byte(`[{"id":1}]`)))
	require.NoError(t, s.Put("todos", []byte(`[]`)))

	got, err := s.Get("todos")
	require.NoError(t, err)
	require.Equal(t, "[]", string(got))
}

func TestReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.Put("todos.next_id", []byte("7")))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get("todos.next_id")
	require.NoError(t, err)
	require.Equal(t, "7", string(got))
}
