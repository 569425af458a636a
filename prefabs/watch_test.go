package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSpecAndScriptEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	write := func(name string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	expect := func(name string, kind ChangeKind) {
		t.Helper()
		deadline := time.After(3 * time.Second)
		for {
			select {
			case ch := <-w.Events:
				if filepath.Base(ch.Path) != name {
					continue
				}
				if ch.Kind != kind {
					t.Fatalf("%s: expected kind %d, got %d", name, kind, ch.Kind)
				}
				return
			case <-deadline:
				t.Fatalf("no event for %s", name)
			}
		}
	}

	write("notes.txt")
	write("scene.yaml")
	expect("scene.yaml", ChangeSpec)
	write("orbit.tengo")
	expect("orbit.tengo", ChangeScript)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"a/scene.YAML", ChangeSpec, true},
		{"b.yml", ChangeSpec, true},
		{"orbit.tengo", ChangeScript, true},
		{"readme.md", 0, false},
	}
	for _, tc := range tests {
		kind, ok := classify(tc.path)
		if ok != tc.ok || kind != tc.kind {
			t.Errorf("classify(%q) = %d, %v", tc.path, kind, ok)
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("events channel should be closed")
	}
}
