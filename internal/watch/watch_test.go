package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case _, ok := <-w.Changes():
		if !ok {
			t.Fatal("changes channel closed")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal")
	}
}

func TestWatcherSignalsWritesToTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "todos.json")
	if err := os.WriteFile(target, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(target)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(target, []byte(`[{"id":1,"text":"a","done":false}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitChange(t, w)

	// rename-over, the way the json backend writes
	tmp := filepath.Join(dir, ".todos.json.tmp")
	if err := os.WriteFile(tmp, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	// drain anything the temp write may have queued for the target
	time.Sleep(50 * time.Millisecond)
	select {
	case <-w.Changes():
	default:
	}
	if err := os.Rename(tmp, target); err != nil {
		t.Fatal(err)
	}
	waitChange(t, w)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "todos.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
		t.Fatal("unexpected signal for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCloseClosesChanges(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "todos.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, ok := <-w.Changes(); ok {
		t.Fatal("Changes should be closed")
	}
}
