package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livetwice/sections"
)

// captureController records the controller run creates.
func captureController(t *testing.T) **sections.Controller {
	t.Helper()
	saved, savedLog := newController, slog.Default()
	t.Cleanup(func() {
		newController = saved
		slog.SetDefault(savedLog)
	})
	var ctrl *sections.Controller
	newController = func(cfg sections.Config, opts ...sections.Option) (*sections.Controller, error) {
		c, err := saved(cfg, opts...)
		ctrl = c
		return c, err
	}
	return &ctrl
}

func TestRunClosesControllerOnScriptError(t *testing.T) {
	tests := []struct {
		name   string
		script func(t *testing.T, dir string) string
	}{
		{"missing file", func(_ *testing.T, dir string) string { return filepath.Join(dir, "missing.json") }},
		{"invalid script", func(t *testing.T, dir string) string {
			p := filepath.Join(dir, "bad.json")
			require.NoError(t, os.WriteFile(p, []byte(`{"steps": [{"action": "fly"}]}`), 0o600))
			return p
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := captureController(t)
			code := run([]string{"-script", tt.script(t, t.TempDir())})
			assert.Equal(t, 1, code)
			require.NotNil(t, *ctrl)
			assert.True(t, (*ctrl).Closed(), "controller must be closed before exit")
		})
	}
}

func TestRunConfigErrors(t *testing.T) {
	ctrl := captureController(t)
	assert.Equal(t, 1, run([]string{"-config", filepath.Join(t.TempDir(), "none.toml")}))
	assert.Equal(t, 2, run([]string{"-no-such-flag"}))
	assert.Nil(t, *ctrl, "no controller is created before the config loads")
}
