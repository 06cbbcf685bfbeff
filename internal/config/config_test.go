package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bjaus/fmtstr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.ColorAuto, cfg.ColorMode())
	assert.Empty(t, cfg.PresetNames())
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fmtstr.toml")
	data := `color = "OFF"

[presets]
money = "{:+010.2f}"
hex = "0x{:08x}"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.ColorOff, cfg.ColorMode())
	assert.Equal(t, []string{"hex", "money"}, cfg.PresetNames())

	f, err := cfg.Preset("money")
	require.NoError(t, err)
	assert.Equal(t, "{:+010.2f}", f)

	_, err = cfg.Preset("nope")
	require.ErrorIs(t, err, config.ErrUnknownPreset)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		data    string
		hasLine bool
	}{
		"bad syntax":     {data: "color = \n", hasLine: true},
		"unclosed table": {data: "color = \"on\"\n[presets\n", hasLine: true},
		"bad color":      {data: "color = \"blue\"\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := config.Parse("test.toml", tt.data)
			require.Error(t, err)

			var pe *config.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "test.toml", pe.Path)
			assert.Equal(t, tt.hasLine, pe.Line > 0)
			assert.Contains(t, pe.Error(), "test.toml")
		})
	}
}

func TestParseInvalidColor(t *testing.T) {
	t.Parallel()
	_, err := config.Parse("c.toml", `color = "blue"`)
	require.ErrorIs(t, err, config.ErrInvalidColor)
}

func TestParseUnknownKeys(t *testing.T) {
	t.Parallel()
	cfg, err := config.Parse("c.toml", "theme = \"dark\"\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"theme"}, cfg.Unknown)
}

func TestLoadDirectory(t *testing.T) {
	t.Parallel()
	_, err := config.Load(t.TempDir())
	require.Error(t, err)
}
