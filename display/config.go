package display

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RunConfig configures the window and the frame driver.
type RunConfig struct {
	Title string `yaml:"title"`
	// Width and Height are the logical screen size, equal to the viewport.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Scale is the integer window zoom; pixel art is never scaled fractionally.
	Scale int `yaml:"scale,omitempty"`
	// TPS is the tick rate. Each tick advances the world by 1000/TPS ms.
	TPS int `yaml:"tps,omitempty"`
	// Debug enables the bounds overlay and stderr stats.
	Debug bool `yaml:"debug,omitempty"`
	// ShowFPS draws the frame rate in the corner.
	ShowFPS bool `yaml:"showFPS,omitempty"`
	// WatchDirs are definition directories reloaded on change.
	WatchDirs []string `yaml:"watch,omitempty"`
}

const (
	defaultScale = 4
	defaultTPS   = 60
)

// LoadRunConfig decodes a YAML run config and fills in defaults.
func LoadRunConfig(yamlData []byte) (RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(yamlData, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("display: parse run config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return RunConfig{}, fmt.Errorf("display: run config: screen size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	return cfg.withDefaults(), nil
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Scale <= 0 {
		c.Scale = defaultScale
	}
	if c.TPS <= 0 {
		c.TPS = defaultTPS
	}
	return c
}

// tickMillis is the simulated time of one tick.
func (c RunConfig) tickMillis() int {
	return 1000 / c.TPS
}
