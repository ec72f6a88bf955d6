// Package save persists level snapshots in named slots using gdata for
// platform storage and msgpack for the payload.
package save

import (
	"errors"
	"fmt"
	"time"

	nature "github.com/oidoid/nature-elsewhere-sub000"

	"github.com/quasilyte/gdata/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// formatVersion is bumped whenever the payload layout changes.
const formatVersion = 1

const levelProp = "level"

var (
	// ErrNoSlot is returned when loading a slot that was never saved.
	ErrNoSlot = errors.New("no such save slot")
	// ErrVersion is returned for a payload written by an incompatible version.
	ErrVersion = errors.New("unsupported save version")
)

type payload struct {
	Version int                `msgpack:"version"`
	SavedAt int64              `msgpack:"savedAt"`
	Level   nature.LevelConfig `msgpack:"level"`
}

// Store reads and writes save slots.
type Store struct {
	manager *gdata.Manager
	now     func() time.Time
}

// Open opens the platform storage of appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("save: open %q: %w", appName, err)
	}
	return New(m), nil
}

// New wraps an open gdata manager.
func New(manager *gdata.Manager) *Store {
	return &Store{manager: manager, now: time.Now}
}

// Save writes level to slot, replacing any previous save.
func (s *Store) Save(slot string, level nature.LevelConfig) error {
	data, err := msgpack.Marshal(&payload{
		Version: formatVersion,
		SavedAt: s.now().Unix(),
		Level:   level,
	})
	if err != nil {
		return fmt.Errorf("save: encode slot %q: %w", slot, err)
	}
	if err := s.manager.SaveObjectProp(slotObject(slot), levelProp, data); err != nil {
		return fmt.Errorf("save: write slot %q: %w", slot, err)
	}
	return nil
}

// Load reads the level saved in slot.
func (s *Store) Load(slot string) (nature.LevelConfig, error) {
	p, err := s.load(slot)
	if err != nil {
		return nature.LevelConfig{}, err
	}
	return p.Level, nil
}

// SavedAt returns when slot was last written.
func (s *Store) SavedAt(slot string) (time.Time, error) {
	p, err := s.load(slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(p.SavedAt, 0), nil
}

func (s *Store) load(slot string) (*payload, error) {
	if !s.Exists(slot) {
		return nil, fmt.Errorf("save: load slot %q: %w", slot, ErrNoSlot)
	}
	data, err := s.manager.LoadObjectProp(slotObject(slot), levelProp)
	if err != nil {
		return nil, fmt.Errorf("save: read slot %q: %w", slot, err)
	}
	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("save: decode slot %q: %w", slot, err)
	}
	if p.Version != formatVersion {
		return nil, fmt.Errorf("save: slot %q version %d: %w", slot, p.Version, ErrVersion)
	}
	return &p, nil
}

// Exists reports whether slot holds a save.
func (s *Store) Exists(slot string) bool {
	return s.manager.ObjectPropExists(slotObject(slot), levelProp)
}

// Delete removes slot. Deleting an empty slot is not an error.
func (s *Store) Delete(slot string) error {
	if !s.Exists(slot) {
		return nil
	}
	if err := s.manager.DeleteObjectProp(slotObject(slot), levelProp); err != nil {
		return fmt.Errorf("save: delete slot %q: %w", slot, err)
	}
	return nil
}

func slotObject(slot string) string { return "slot-" + slot }
