package nature

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LevelConfig is the persisted form of a level: its size, the entity the
// camera follows and the diffed configs of every top-level entity.
type LevelConfig struct {
	Name string `yaml:"name" msgpack:"name"`
	// Size is the level extent the camera is clamped to. Zero disables
	// clamping.
	Size WH `yaml:"size,omitempty" msgpack:"size,omitempty"`
	// Follow is the ID of the entity the camera follows.
	Follow   string   `yaml:"follow,omitempty" msgpack:"follow,omitempty"`
	Entities []Config `yaml:"entities" msgpack:"entities"`
}

// LoadLevel decodes a YAML level. Unknown keys and non-integer coordinates
// are errors.
func LoadLevel(yamlData []byte) (LevelConfig, error) {
	var level LevelConfig
	if err := decodeStrict(yamlData, &level); err != nil {
		return LevelConfig{}, fmt.Errorf("nature: parse level: %w", err)
	}
	for i, cfg := range level.Entities {
		if cfg.Type == "" {
			return LevelConfig{}, fmt.Errorf("nature: parse level: entity %d: missing type: %w", i, ErrUnknownKind)
		}
	}
	return level, nil
}

// MarshalLevel encodes level as YAML.
func MarshalLevel(level LevelConfig) ([]byte, error) {
	data, err := yaml.Marshal(level)
	if err != nil {
		return nil, fmt.Errorf("nature: marshal level: %w", err)
	}
	return data, nil
}
