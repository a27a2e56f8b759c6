package board

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"tileboard/pkg/geometry"
)

const configFile = "config.toml"

// Config holds the tunable engine parameters. Values are compiled-in
// defaults, optionally overridden by ~/.config/tileboard/config.toml.
type Config struct {
	CanvasWidth  float64 `toml:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height"`

	// DefaultTileSize is the edge length used when creating tiles by tap
	// and when laying out grid conversions.
	DefaultTileSize float64 `toml:"default_tile_size"`

	// MaxTiles caps tap-to-create. Creation past the cap is refused, not an
	// error condition for the engine.
	MaxTiles int `toml:"max_tiles"`

	// DebounceInterval throttles position writes while a gesture is live.
	DebounceInterval time.Duration `toml:"-"`
	DebounceMillis   int           `toml:"debounce_ms"`

	// RowTolerance buckets tile y-positions into rows when converting
	// freeform layouts back to grid order.
	RowTolerance float64 `toml:"row_tolerance"`

	// TapThreshold is the maximum total pointer movement, in screen pixels,
	// for a press-release to count as a tap.
	TapThreshold float64 `toml:"tap_threshold"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:      geometry.DefaultCanvasWidth,
		CanvasHeight:     geometry.DefaultCanvasHeight,
		DefaultTileSize:  150,
		MaxTiles:         50,
		DebounceInterval: 500 * time.Millisecond,
		DebounceMillis:   500,
		RowTolerance:     50,
		TapThreshold:     5,
	}
}

// LoadConfig reads the user config file if present, merged over defaults.
// A missing file is not an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	path := filepath.Join(configDir, "tileboard", configFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs out-of-range values after decoding. Bad values are
// clamped back to defaults rather than rejected.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		c.CanvasWidth = def.CanvasWidth
		c.CanvasHeight = def.CanvasHeight
	}
	if c.DefaultTileSize < geometry.MinTileSize || c.DefaultTileSize > geometry.MaxTileSize {
		c.DefaultTileSize = def.DefaultTileSize
	}
	if c.MaxTiles <= 0 {
		c.MaxTiles = def.MaxTiles
	}
	if c.DebounceMillis <= 0 {
		c.DebounceMillis = def.DebounceMillis
	}
	c.DebounceInterval = time.Duration(c.DebounceMillis) * time.Millisecond
	if c.RowTolerance <= 0 {
		c.RowTolerance = def.RowTolerance
	}
	if c.TapThreshold <= 0 {
		c.TapThreshold = def.TapThreshold
	}
}

// CanvasSize returns the virtual canvas size as a geometry.Size.
func (c Config) CanvasSize() geometry.Size {
	return geometry.Size{Width: c.CanvasWidth, Height: c.CanvasHeight}
}
