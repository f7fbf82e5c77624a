package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kestrel/config"
	"github.com/plus3/kestrel/ecs"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.Equal(t, 960, c.Window.Width)
	assert.Equal(t, 540, c.Window.Height)
	assert.Equal(t, 60, c.Window.TPS)
	assert.Equal(t, config.CloneReset, c.Graphics.TransformClone)
	assert.Equal(t, config.FormatPretty, c.Log.Format)
	assert.Equal(t, time.Second/60, c.Stress.Delta)
	assert.NoError(t, c.Validate())
}

func TestParse(t *testing.T) {
	data := []byte(`
window:
  width: 1280
  title: demo
graphics:
  debug: true
  transformClone: values
log:
  level: debug
  format: json
stress:
  entities: 500
  delta: 10ms
  offScreenRatio: 0.25
`)

	c, err := config.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, 540, c.Window.Height, "unset fields take defaults")
	assert.Equal(t, "demo", c.Window.Title)
	assert.True(t, c.Graphics.Debug)
	assert.Equal(t, ecs.TransformCloneValues, c.TransformCloneMode())
	assert.Equal(t, 500, c.Stress.Entities)
	assert.Equal(t, 10*time.Millisecond, c.Stress.Delta)
	assert.Equal(t, 0.25, c.Stress.OffScreenRatio)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"clone mode", "graphics:\n  transformClone: deep\n"},
		{"log level", "log:\n  level: loud\n"},
		{"log format", "log:\n  format: xml\n"},
		{"negative size", "window:\n  width: -1\n"},
		{"ratio", "stress:\n  offScreenRatio: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.data))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Parse([]byte("window: [\n"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, config.ErrInvalid)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kestrel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  tps: 30\n"), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, c.Window.TPS)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	prev := ecs.CurrentTransformCloneMode()
	t.Cleanup(func() { ecs.SetTransformCloneMode(prev) })

	c := config.Default()
	c.Graphics.TransformClone = config.CloneValues
	c.Apply()
	assert.Equal(t, ecs.TransformCloneValues, ecs.CurrentTransformCloneMode())
}

func TestLogger(t *testing.T) {
	c := config.Default()
	c.Log.Format = config.FormatJSON
	c.Log.Level = "warn"

	var buf bytes.Buffer
	logger := c.Logger(&buf)
	logger.Info().Msg("hidden")
	logger.Warn().Str("system", "graphics").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"system":"graphics"`)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}
