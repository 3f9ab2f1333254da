package sections

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// glowEase keeps the marker bright at first and drops it off at the end.
var glowEase ease.TweenFunc = ease.InQuad

// Glow is the touch-surface stand-in for the cursor: each touch shows a
// marker at the touch point that fades out over the fade delay unless
// another touch refreshes it.
type Glow struct {
	sched   *Scheduler
	fade    time.Duration
	pos     Vec2
	visible bool
	alpha   float32
	tween   *gween.Tween
	step    *Task // advances the alpha tween
	hide    *Task
}

// NewGlow creates a hidden glow whose fade runs on s.
func NewGlow(s *Scheduler, fade time.Duration) *Glow {
	return &Glow{sched: s, fade: fade}
}

// Touch shows the marker at (x, y) at full strength and restarts the fade.
func (g *Glow) Touch(x, y float64) {
	g.pos = Vec2{X: x, Y: y}
	g.visible = true
	g.alpha = 1
	g.tween = gween.New(1, 0, float32(g.fade.Seconds()), glowEase)
	if !g.step.Pending() {
		g.step = g.sched.EveryFrame(func(dt time.Duration) {
			g.alpha, _ = g.tween.Update(float32(dt.Seconds()))
		})
	}
	g.hide.Cancel()
	g.hide = g.sched.AfterFunc(g.fade, g.off)
}

func (g *Glow) off() {
	g.step.Cancel()
	g.hide.Cancel()
	g.step, g.hide = nil, nil
	g.visible = false
	g.alpha = 0
}

// Visible reports whether the marker is showing.
func (g *Glow) Visible() bool { return g.visible }

// Alpha returns the marker's opacity in [0, 1]; zero while hidden.
func (g *Glow) Alpha() float32 { return g.alpha }

// Position returns the last touch point.
func (g *Glow) Position() Vec2 { return g.pos }

// Close hides the marker and cancels its fade.
func (g *Glow) Close() { g.off() }
