package config

import (
	"fmt"
	"os"

	"github.com/decker502/dragonsweeper/pkg/engine"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath is the embedded game configuration.
const DefaultGameConfigPath = "data/dragonsweeper.yaml"

// GameConfig holds the tunable values of the desktop game.
//
// File location: data/dragonsweeper.yaml
type GameConfig struct {
	Board BoardRanges `yaml:"board"`
	Audio AudioConfig `yaml:"audio"`
}

// BoardRanges are the slider ranges offered to the player.
type BoardRanges struct {
	Width        IntRange `yaml:"width"`
	Height       IntRange `yaml:"height"`
	MinesPercent IntRange `yaml:"minesPercent"`
}

// IntRange is an inclusive integer range with a default value.
type IntRange struct {
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Default int `yaml:"default"`
}

// AudioConfig configures the synthesized sound effects and music.
type AudioConfig struct {
	SampleRate  int     `yaml:"sampleRate"`
	SoundVolume float64 `yaml:"soundVolume"`
	MusicVolume float64 `yaml:"musicVolume"`
}

// DefaultGameConfig mirrors data/dragonsweeper.yaml and is used when the file
// cannot be read.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Board: BoardRanges{
			Width:        IntRange{Min: engine.MinWidth, Max: engine.MaxWidth, Default: engine.DefaultWidth},
			Height:       IntRange{Min: engine.MinHeight, Max: engine.MaxHeight, Default: engine.DefaultHeight},
			MinesPercent: IntRange{Min: 5, Max: 40, Default: 20},
		},
		Audio: AudioConfig{
			SampleRate:  48000,
			SoundVolume: 0.15,
			MusicVolume: 0.15,
		},
	}
}

// LoadGameConfig reads and validates a YAML game config from disk.
//
// Parameters:
//   - path: config file path (e.g. "data/dragonsweeper.yaml")
//
// Returns:
//   - *GameConfig: the loaded config
//   - error: read, parse or validation failure
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig decodes and validates YAML config data. Keys missing from
// data keep their DefaultGameConfig values.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every range is ordered, holds its default, and lies
// inside the limits the engine accepts.
func (c *GameConfig) Validate() error {
	checks := []struct {
		name   string
		r      IntRange
		lo, hi int
	}{
		{"board.width", c.Board.Width, engine.MinWidth, engine.MaxWidth},
		{"board.height", c.Board.Height, engine.MinHeight, engine.MaxHeight},
		{"board.minesPercent", c.Board.MinesPercent,
			int(engine.MinMinesPercentage * 100), int(engine.MaxMinesPercentage * 100)},
	}
	for _, chk := range checks {
		if chk.r.Min > chk.r.Max {
			return fmt.Errorf("%s range invalid: min(%d) > max(%d)", chk.name, chk.r.Min, chk.r.Max)
		}
		if chk.r.Min < chk.lo || chk.r.Max > chk.hi {
			return fmt.Errorf("%s range [%d, %d] outside engine limits [%d, %d]",
				chk.name, chk.r.Min, chk.r.Max, chk.lo, chk.hi)
		}
		if chk.r.Default < chk.r.Min || chk.r.Default > chk.r.Max {
			return fmt.Errorf("%s default %d outside [%d, %d]", chk.name, chk.r.Default, chk.r.Min, chk.r.Max)
		}
	}

	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sampleRate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.SoundVolume < 0 || c.Audio.SoundVolume > 1 {
		return fmt.Errorf("audio.soundVolume %.2f outside [0, 1]", c.Audio.SoundVolume)
	}
	if c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		return fmt.Errorf("audio.musicVolume %.2f outside [0, 1]", c.Audio.MusicVolume)
	}
	return nil
}

// DefaultEngineConfig returns the board the config starts new players on.
func (c *GameConfig) DefaultEngineConfig() engine.Config {
	return engine.Config{
		Width:           c.Board.Width.Default,
		Height:          c.Board.Height.Default,
		MinesPercentage: float64(c.Board.MinesPercent.Default) / 100,
	}
}

// Clamp keeps v within r.
func (r IntRange) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}
