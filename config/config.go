// Package config loads runtime settings for the kestrel tools from YAML.
package config

import (
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/plus3/kestrel/ecs"
)

// Config is the root of a kestrel config file.
//
// Example:
//
//	window:
//	  width: 1280
//	  height: 720
//	  title: kestrel
//	  tps: 60
//	graphics:
//	  debug: true
//	  transformClone: values
//	log:
//	  level: debug
//	  format: pretty
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Log      LogConfig      `yaml:"log"`
	Stress   StressConfig   `yaml:"stress"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	// TPS is the fixed update rate in ticks per second.
	TPS int `yaml:"tps"`
}

type GraphicsConfig struct {
	Debug bool `yaml:"debug"`
	// TransformClone is "reset" (default) or "values".
	TransformClone string `yaml:"transformClone"`
	// CellWidth and CellHeight map world units to terminal cells.
	CellWidth  float64 `yaml:"cellWidth"`
	CellHeight float64 `yaml:"cellHeight"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "pretty" or "json".
	Format string `yaml:"format"`
}

// StressConfig drives cmd/gfx-stress.
type StressConfig struct {
	Entities int           `yaml:"entities"`
	Frames   int           `yaml:"frames"`
	Delta    time.Duration `yaml:"delta"`
	// OffScreenRatio is the share of entities placed outside the viewport.
	OffScreenRatio float64 `yaml:"offScreenRatio"`
}

const (
	CloneReset  = "reset"
	CloneValues = "values"

	FormatPretty = "pretty"
	FormatJSON   = "json"
)

var ErrInvalid = eris.New("invalid config")

// Default returns the settings used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and validates the file at path. Unset fields take their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read config %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML config data.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "failed to parse config")
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = 960
	}
	if c.Window.Height == 0 {
		c.Window.Height = 540
	}
	if c.Window.Title == "" {
		c.Window.Title = "kestrel"
	}
	if c.Window.TPS == 0 {
		c.Window.TPS = 60
	}
	if c.Graphics.TransformClone == "" {
		c.Graphics.TransformClone = CloneReset
	}
	if c.Graphics.CellWidth == 0 {
		c.Graphics.CellWidth = 8
	}
	if c.Graphics.CellHeight == 0 {
		c.Graphics.CellHeight = 16
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = FormatPretty
	}
	if c.Stress.Entities == 0 {
		c.Stress.Entities = 10000
	}
	if c.Stress.Frames == 0 {
		c.Stress.Frames = 300
	}
	if c.Stress.Delta == 0 {
		c.Stress.Delta = time.Second / 60
	}
}

// Validate checks values that defaults cannot fix.
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return eris.Wrapf(ErrInvalid, "window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 0 {
		return eris.Wrapf(ErrInvalid, "tps %d", c.Window.TPS)
	}
	switch c.Graphics.TransformClone {
	case CloneReset, CloneValues:
	default:
		return eris.Wrapf(ErrInvalid, "transformClone %q", c.Graphics.TransformClone)
	}
	if c.Graphics.CellWidth < 0 || c.Graphics.CellHeight < 0 {
		return eris.Wrapf(ErrInvalid, "cell size %gx%g", c.Graphics.CellWidth, c.Graphics.CellHeight)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrapf(ErrInvalid, "log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case FormatPretty, FormatJSON:
	default:
		return eris.Wrapf(ErrInvalid, "log format %q", c.Log.Format)
	}
	if c.Stress.Entities < 0 || c.Stress.Frames < 0 {
		return eris.Wrapf(ErrInvalid, "stress run %d entities x %d frames", c.Stress.Entities, c.Stress.Frames)
	}
	if c.Stress.OffScreenRatio < 0 || c.Stress.OffScreenRatio > 1 {
		return eris.Wrapf(ErrInvalid, "offScreenRatio %g", c.Stress.OffScreenRatio)
	}
	return nil
}

// TransformCloneMode returns the configured clone mode.
func (c *Config) TransformCloneMode() ecs.TransformCloneMode {
	if c.Graphics.TransformClone == CloneValues {
		return ecs.TransformCloneValues
	}
	return ecs.TransformCloneReset
}

// Apply pushes package-level settings.
func (c *Config) Apply() {
	ecs.SetTransformCloneMode(c.TransformCloneMode())
}

// Logger builds the logger described by the log section, writing to w.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.Log.Format == FormatPretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
