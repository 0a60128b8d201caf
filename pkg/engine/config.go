// Package engine implements the Dragonsweeper board engine.
//
// The engine is a pure state machine: it builds boards, places mines on the
// first dig, counts adjacent mines, flood-fills empty regions and tallies the
// end-game results. It performs no I/O and never logs; the presentation layer
// owns rendering, audio and persistence and reacts to the events returned here.
package engine

import (
	"errors"
	"fmt"
	"math"
)

// Board size and density limits accepted by NewGame.
const (
	MinWidth  = 4
	MaxWidth  = 16
	MinHeight = 4
	MaxHeight = 10

	MinMinesPercentage = 0.05
	MaxMinesPercentage = 0.40

	// ProtectedZoneSize is the largest possible first-click safe area:
	// the clicked tile plus its eight neighbours.
	ProtectedZoneSize = 9
)

// Default configuration used when no saved preferences are available.
const (
	DefaultWidth           = 12
	DefaultHeight          = 8
	DefaultMinesPercentage = 0.2
)

// ErrInvalidConfig is matched by every *ConfigError.
var ErrInvalidConfig = errors.New("invalid board configuration")

// ConfigError describes a configuration value rejected by the engine.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

// Is reports ErrInvalidConfig as the sentinel of every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Config is the set of values that shape a game.
type Config struct {
	Width           int     `yaml:"width" json:"width"`
	Height          int     `yaml:"height" json:"height"`
	MinesPercentage float64 `yaml:"minesPercentage" json:"minesPercentage"`
}

// DefaultConfig returns the 12x8 board with 20% mines.
func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		MinesPercentage: DefaultMinesPercentage,
	}
}

// TotalMines returns ceil(width*height*minesPercentage).
func (c Config) TotalMines() int {
	return TotalMines(c.Width, c.Height, c.MinesPercentage)
}

// Validate checks the ranges a session can be built from. Beyond the slider
// ranges it also requires at least ProtectedZoneSize mine-free tiles, so that
// a first dig anywhere on the board can always be made safe.
func (c Config) Validate() error {
	if c.Width < MinWidth || c.Width > MaxWidth {
		return &ConfigError{Field: "width", Value: float64(c.Width),
			Reason: fmt.Sprintf("must be between %d and %d", MinWidth, MaxWidth)}
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		return &ConfigError{Field: "height", Value: float64(c.Height),
			Reason: fmt.Sprintf("must be between %d and %d", MinHeight, MaxHeight)}
	}
	if math.IsNaN(c.MinesPercentage) || c.MinesPercentage < MinMinesPercentage-percentageEpsilon ||
		c.MinesPercentage > MaxMinesPercentage+percentageEpsilon {
		return &ConfigError{Field: "minesPercentage", Value: c.MinesPercentage,
			Reason: fmt.Sprintf("must be between %.2f and %.2f", MinMinesPercentage, MaxMinesPercentage)}
	}
	if free := c.Width*c.Height - c.TotalMines(); free < ProtectedZoneSize {
		return &ConfigError{Field: "minesPercentage", Value: c.MinesPercentage,
			Reason: fmt.Sprintf("leaves %d free tiles, need at least %d", free, ProtectedZoneSize)}
	}
	return nil
}

// Clamp forces every field into its accepted range. NaN percentages fall back
// to the default. Clamp is what callers use on untrusted input (saved
// preferences, sliders) before building a session.
func (c Config) Clamp() Config {
	c.Width = clampInt(c.Width, MinWidth, MaxWidth)
	c.Height = clampInt(c.Height, MinHeight, MaxHeight)
	switch {
	case math.IsNaN(c.MinesPercentage):
		c.MinesPercentage = DefaultMinesPercentage
	case c.MinesPercentage < MinMinesPercentage:
		c.MinesPercentage = MinMinesPercentage
	case c.MinesPercentage > MaxMinesPercentage:
		c.MinesPercentage = MaxMinesPercentage
	}
	return c
}

// percentageEpsilon absorbs float noise such as 0.07 being stored as
// 0.07000000000000001 after a percent slider conversion.
const percentageEpsilon = 1e-9

// TotalMines returns ceil(width*height*minesPercentage), ignoring float noise
// below percentageEpsilon. This deliberately differs from a plain float ceil:
// 10*10*0.07 evaluates to 7.000000000000001, which a plain ceil turns into 8
// mines; TotalMines yields the exact 7. Fractional percentages such as 0.075
// are still honored.
func TotalMines(width, height int, minesPercentage float64) int {
	if width <= 0 || height <= 0 || minesPercentage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(width*height)*minesPercentage - percentageEpsilon))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
