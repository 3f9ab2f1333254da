package sections

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 600*time.Millisecond, cfg.TransitionDuration)
	assert.Equal(t, 500*time.Millisecond, cfg.Cooldown)
	assert.Equal(t, 0.3, cfg.SnapVisibilityThreshold)
	assert.Equal(t, 50.0, cfg.SwipeThreshold)
	assert.Equal(t, AxisHorizontal, cfg.PagingAxis)
	assert.Equal(t, AxisVertical, cfg.GestureAxis)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no sections", func(c *Config) { c.TotalSections = 0 }},
		{"label count", func(c *Config) { c.SectionLabels = []string{"one"} }},
		{"bad axis", func(c *Config) { c.PagingAxis = 7 }},
		{"zero transition", func(c *Config) { c.TransitionDuration = 0 }},
		{"negative cooldown", func(c *Config) { c.Cooldown = -time.Millisecond }},
		{"visibility above one", func(c *Config) { c.SnapVisibilityThreshold = 1.5 }},
		{"zero debounce", func(c *Config) { c.SnapDebounce = 0 }},
		{"tolerance of a whole section", func(c *Config) { c.SnapTolerance = 1 }},
		{"negative swipe", func(c *Config) { c.SwipeThreshold = -1 }},
		{"zero cursor lerp", func(c *Config) { c.CursorLerp = 0 }},
		{"fallback lerp above one", func(c *Config) { c.FallbackLerp = 1.2 }},
		{"zero glow", func(c *Config) { c.GlowFade = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigLabel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "About", cfg.Label(1))
	cfg.SectionLabels = nil
	assert.Equal(t, "Section 2", cfg.Label(1))
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
debug = true

[sections]
total = 3
labels = ["Intro", "Work", "Contact"]
paging_axis = "vertical"

[transition]
duration = "400ms"
cooldown = "300ms"

[snap]
visibility = 0.4

[pointer]
glow_fade = "1s"
`)
	cfg, err := ParseConfig(data)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3, cfg.TotalSections)
	assert.Equal(t, []string{"Intro", "Work", "Contact"}, cfg.SectionLabels)
	assert.Equal(t, AxisVertical, cfg.PagingAxis)
	assert.Equal(t, AxisVertical, cfg.GestureAxis, "unset keys keep defaults")
	assert.Equal(t, 400*time.Millisecond, cfg.TransitionDuration)
	assert.Equal(t, 300*time.Millisecond, cfg.Cooldown)
	assert.Equal(t, 0.4, cfg.SnapVisibilityThreshold)
	assert.Equal(t, 150*time.Millisecond, cfg.SnapDebounce)
	assert.Equal(t, time.Second, cfg.GlowFade)
}

func TestParseConfigTotalDropsDefaultLabels(t *testing.T) {
	cfg, err := ParseConfig([]byte("[sections]\ntotal = 6\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.SectionLabels)
	assert.Equal(t, "Section 6", cfg.Label(5))
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[sections\n"},
		{"axis", "[sections]\npaging_axis = \"diagonal\"\n"},
		{"duration", "[transition]\nduration = \"soon\"\n"},
		{"validation", "[snap]\nvisibility = 2.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sections.toml")
	require.NoError(t, os.WriteFile(path, []byte("[transition]\nduration = \"1s\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.TransitionDuration)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SECTIONS_TOTAL", "2")
	t.Setenv("SECTIONS_LABELS", "Front, Back")
	t.Setenv("SECTIONS_PAGING_AXIS", "Vertical")
	t.Setenv("SECTIONS_TRANSITION", "250ms")
	t.Setenv("SECTIONS_DEBUG", "true")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, 2, cfg.TotalSections)
	assert.Equal(t, []string{"Front", "Back"}, cfg.SectionLabels)
	assert.Equal(t, AxisVertical, cfg.PagingAxis)
	assert.Equal(t, 250*time.Millisecond, cfg.TransitionDuration)
	assert.True(t, cfg.Debug)
}

func TestApplyEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SECTIONS_COOLDOWN=2s\n"), 0o644))
	t.Setenv("SECTIONS_COOLDOWN", "")
	os.Unsetenv("SECTIONS_COOLDOWN")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(path))
	assert.Equal(t, 2*time.Second, cfg.Cooldown)
}

func TestApplyEnvErrors(t *testing.T) {
	tests := []struct{ key, value string }{
		{"SECTIONS_TOTAL", "many"},
		{"SECTIONS_DEBUG", "sometimes"},
		{"SECTIONS_GESTURE_AXIS", "z"},
		{"SECTIONS_SNAP_DEBOUNCE", "later"},
		{"SECTIONS_TOTAL", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := DefaultConfig()
			assert.Error(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "absent.env")))
		})
	}
}
