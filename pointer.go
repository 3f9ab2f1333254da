package sections

import (
	"math"
	"time"
)

// PointerFrame is what the tracker publishes each frame.
type PointerFrame struct {
	// Position is the smoothed pointer position.
	Position Vec2
	// Pointer is true while the raw pointer is over something interactive.
	// It is not smoothed.
	Pointer bool
	// Pressed is true while a button is held.
	Pressed bool
}

// PointerTracker smooths irregular pointer samples into a per-frame
// position: rendered += (target - rendered) * factor. There is no velocity,
// so for factors in (0, 1] it never overshoots and converges on a fixed
// target.
type PointerTracker struct {
	factor   float64
	target   Vec2
	rendered Vec2
	pointer  bool
	pressed  bool
	task     *Task
}

// NewPointerTracker creates a tracker with the given smoothing factor,
// clamped to (0, 1].
func NewPointerTracker(factor float64) *PointerTracker {
	if factor <= 0 || factor > 1 || math.IsNaN(factor) {
		factor = 1
	}
	return &PointerTracker{factor: factor}
}

// Factor returns the smoothing factor.
func (p *PointerTracker) Factor() float64 { return p.factor }

// Reset places both the target and the rendered position at v.
func (p *PointerTracker) Reset(v Vec2) {
	p.target = v
	p.rendered = v
}

// Move sets the target from a raw move event. The affordance flag takes
// effect immediately.
func (p *PointerTracker) Move(x, y float64, pointer bool) {
	p.target = Vec2{X: x, Y: y}
	p.pointer = pointer
}

// Press marks a button as held.
func (p *PointerTracker) Press() { p.pressed = true }

// Release marks the button as released.
func (p *PointerTracker) Release() { p.pressed = false }

// Step advances the smoothed position by one frame and returns it.
func (p *PointerTracker) Step() Vec2 {
	p.rendered.X += (p.target.X - p.rendered.X) * p.factor
	p.rendered.Y += (p.target.Y - p.rendered.Y) * p.factor
	return p.rendered
}

// Frame returns the tracker's published state.
func (p *PointerTracker) Frame() PointerFrame {
	return PointerFrame{Position: p.rendered, Pointer: p.pointer, Pressed: p.pressed}
}

// Rendered returns the smoothed position.
func (p *PointerTracker) Rendered() Vec2 { return p.rendered }

// Pointer reports the instantaneous affordance flag.
func (p *PointerTracker) Pointer() bool { return p.pointer }

// Start runs Step on every scheduler tick and hands the result to onFrame,
// which may be nil. A running loop is stopped first.
func (p *PointerTracker) Start(s *Scheduler, onFrame func(PointerFrame)) {
	p.Stop()
	p.task = s.EveryFrame(func(time.Duration) {
		p.Step()
		if onFrame != nil {
			onFrame(p.Frame())
		}
	})
}

// Stop cancels the frame loop. Required on teardown unless the scheduler
// itself is closed.
func (p *PointerTracker) Stop() {
	p.task.Cancel()
	p.task = nil
}

// Running reports whether the frame loop is scheduled.
func (p *PointerTracker) Running() bool {
	return p.task.Pending()
}

// FramesToConverge returns how many Steps bring a gap of distance below
// epsilon at the given factor.
func FramesToConverge(factor, distance, epsilon float64) int {
	if distance <= epsilon {
		return 0
	}
	if factor >= 1 {
		return 1
	}
	return int(math.Ceil(math.Log(epsilon/distance) / math.Log(1-factor)))
}
