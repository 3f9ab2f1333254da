package surface

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/livetwice/sections"
)

// RunConfig holds window and loop options for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// WheelScale converts Ebitengine wheel offsets (about one per notch) to
	// pixels. Defaults to 100.
	WheelScale float64
	// Script, when set, is attached to the controller and ends the run once
	// it is done. Run reports its failed expectations as an error.
	Script *sections.TestRunner
	// TouchOnly starts the surface without the custom cursor, as on a
	// phone. Without it the surface switches on its own when a touch
	// arrives before any mouse activity.
	TouchOnly bool
	// OnFrame runs after every controller update.
	OnFrame func()
	Logger  *slog.Logger
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "sections"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.WheelScale <= 0 {
		c.WheelScale = 100
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// ErrScriptFailed is returned by Run when a test script's expectations fail.
var ErrScriptFailed = errors.New("test script failed")

// Run opens a window and drives ctrl until the window closes or the script
// finishes. It blocks and must be called from the main goroutine.
func Run(ctrl *sections.Controller, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	if cfg.Script != nil {
		ctrl.SetTestRunner(cfg.Script)
	}

	g := NewGame(ctrl, cfg)
	defer g.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if cfg.Script != nil {
		if f := cfg.Script.Failures(); len(f) > 0 {
			return fmt.Errorf("%w: %s", ErrScriptFailed, strings.Join(f, "; "))
		}
	}
	return nil
}
