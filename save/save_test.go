package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	nature "github.com/oidoid/nature-elsewhere-sub000"

	"github.com/quasilyte/gdata/v2"
)

// newTestStore opens a throwaway store, or returns nil when the platform
// storage is unavailable.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	appName := fmt.Sprintf("nature_save_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return New(m)
}

func ptr[T any](v T) *T { return &v }

func TestSaveLoad(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Skip("cannot open gdata storage")
	}
	ct := nature.CollisionObstacle | nature.CollisionScenery
	level := nature.LevelConfig{
		Name:   "meadow",
		Size:   nature.WH{W: 320, H: 240},
		Follow: "player",
		Entities: []nature.Config{
			{Type: "player", ID: "player", Position: &nature.XY{X: 10, Y: 20}},
			{Type: "tree", State: ptr(nature.State("bare")), CollisionType: &ct},
			{Type: "grass"},
		},
	}
	if err := s.Save("1", level); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists("1") {
		t.Fatal("Exists = false after Save")
	}
	got, err := s.Load("1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "meadow" || got.Size != level.Size || got.Follow != "player" {
		t.Errorf("level header = %+v", got)
	}
	if len(got.Entities) != 3 {
		t.Fatalf("entities = %d, want 3", len(got.Entities))
	}
	if p := got.Entities[0].Position; p == nil || *p != (nature.XY{X: 10, Y: 20}) {
		t.Errorf("player position = %v", p)
	}
	if st := got.Entities[1].State; st == nil || *st != "bare" {
		t.Errorf("tree state = %v", st)
	}
	if c := got.Entities[1].CollisionType; c == nil || *c != ct {
		t.Errorf("tree collision type = %v", c)
	}
	if e := got.Entities[2]; e.Position != nil || e.State != nil || e.Velocity != nil {
		t.Errorf("grass should hold only its type: %+v", e)
	}
}

func TestLoadMissingSlot(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Skip("cannot open gdata storage")
	}
	_, err := s.Load("missing")
	if !errors.Is(err, ErrNoSlot) {
		t.Errorf("Load error = %v, want ErrNoSlot", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Skip("cannot open gdata storage")
	}
	if err := s.Delete("never-saved"); err != nil {
		t.Errorf("Delete of empty slot: %v", err)
	}
	if err := s.Save("2", nature.LevelConfig{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists("2") {
		t.Error("slot still exists after Delete")
	}
}

func TestSavedAt(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Skip("cannot open gdata storage")
	}
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	if err := s.Save("3", nature.LevelConfig{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	at, err := s.SavedAt("3")
	if err != nil {
		t.Fatal(err)
	}
	if at.Unix() != 1700000000 {
		t.Errorf("SavedAt = %v", at)
	}
}
