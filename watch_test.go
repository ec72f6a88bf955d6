package nature

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefinitionWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	w, err := NewDefinitionWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	reg := newTestRegistry(t)
	path := filepath.Join(dir, "tree.yaml")
	def := []byte("- kind: tree\n  defaults:\n    collisionPredicate: images\n")
	if err := os.WriteFile(path, def, 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-definition files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if name != path {
				t.Fatalf("event for %q, want %q", name, path)
			}
			// Put it back so Reload sees it.
			w.Events <- name
			n, err := w.Reload(reg)
			if err != nil {
				t.Fatal(err)
			}
			if n < 1 {
				t.Fatalf("reloaded %d files", n)
			}
			got, _ := reg.Definition("tree")
			if got.Defaults.CollisionPredicate != CollideImages {
				t.Errorf("predicate = %v, want images", got.Defaults.CollisionPredicate)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for definition event")
		}
	}
}

func TestDefinitionWatcher_ReloadInvalidKeepsKinds(t *testing.T) {
	// Written before the watcher starts so no file event races the test.
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	bad := []byte("- kind: tree\n  defaults:\n    variant: autumn\n    scale: {x: -1, y: 1}\n")
	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewDefinitionWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	reg := newTestRegistry(t)
	before, _ := reg.Definition("tree")
	w.Events <- path
	if n, err := w.Reload(reg); err == nil || n != 0 {
		t.Fatalf("Reload = %d, %v, want 0 and an error", n, err)
	}
	if got, ok := reg.Definition("tree"); !ok || got != before {
		t.Error("failed reload changed tree")
	}
}

func TestDefinitionWatcher_ReloadEmpty(t *testing.T) {
	w, err := NewDefinitionWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	n, err := w.Reload(NewRegistry(nil))
	if n != 0 || err != nil {
		t.Errorf("Reload = %d, %v", n, err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestNewDefinitionWatcher_MissingDir(t *testing.T) {
	if _, err := NewDefinitionWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestIsDefinitionFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.yaml": true, "b.YML": true, "c.json": false, "yaml": false,
	} {
		if got := isDefinitionFile(path); got != want {
			t.Errorf("isDefinitionFile(%q) = %v", path, got)
		}
	}
}
