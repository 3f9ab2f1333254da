package sections

import "math"

// GestureSample is the state of one touch gesture, from touch start to touch
// end. It is cleared as soon as the gesture resolves.
type GestureSample struct {
	Start  Vec2
	Active bool
}

// Normalizer turns wheel and touch input into direction-only intents on the
// gesture axis. Deltas follow the DOM convention: positive means scrolling
// down/right, which advances.
type Normalizer struct {
	axis      Axis
	threshold float64
	slop      float64
	touch     GestureSample
}

// NewNormalizer reads the gesture axis and touch thresholds from cfg.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{
		axis:      cfg.GestureAxis,
		threshold: cfg.SwipeThreshold,
		slop:      cfg.TouchMoveSlop,
	}
}

// Wheel classifies one wheel event. Only deltas whose gesture-axis component
// strictly dominates yield an intent, always of magnitude one; ok is false
// for everything else, which the caller may treat as native scroll.
func (n *Normalizer) Wheel(dx, dy float64) (in Intent, ok bool) {
	along, across := n.axis.Split(dx, dy)
	if math.Abs(along) <= math.Abs(across) {
		return IntentNone, false
	}
	if along > 0 {
		return IntentAdvance, true
	}
	return IntentRetreat, true
}

// TouchStart begins a gesture at (x, y), replacing any unfinished one.
func (n *Normalizer) TouchStart(x, y float64) {
	n.touch = GestureSample{Start: Vec2{X: x, Y: y}, Active: true}
}

// TouchMove reports whether default scrolling should be suppressed: true
// once the gesture has moved more than the slop on the gesture axis. Moves
// never produce intents.
func (n *Normalizer) TouchMove(x, y float64) bool {
	if !n.touch.Active {
		return false
	}
	along, _ := n.axis.Split(x-n.touch.Start.X, y-n.touch.Start.Y)
	return math.Abs(along) > n.slop
}

// TouchEnd resolves the gesture. An intent is produced only when the
// gesture-axis displacement exceeds the swipe threshold and the orthogonal
// displacement. Displacement is start minus end, so swiping up (or left)
// advances.
func (n *Normalizer) TouchEnd(x, y float64) (in Intent, ok bool) {
	if !n.touch.Active {
		return IntentNone, false
	}
	start := n.touch.Start
	n.touch = GestureSample{}

	along, across := n.axis.Split(start.X-x, start.Y-y)
	if math.Abs(along) <= n.threshold || math.Abs(along) <= math.Abs(across) {
		return IntentNone, false
	}
	if along > 0 {
		return IntentAdvance, true
	}
	return IntentRetreat, true
}

// CancelTouch discards an unfinished gesture.
func (n *Normalizer) CancelTouch() {
	n.touch = GestureSample{}
}

// Gesture returns the in-progress touch gesture, if any.
func (n *Normalizer) Gesture() GestureSample {
	return n.touch
}

// HandleWheel routes a wheel event. A paging event is applied as an intent
// and reported as consumed even when the intent is dropped; anything else
// scrolls the container natively by its paging-axis component and is
// reported as not consumed.
func (c *Controller) HandleWheel(dx, dy float64) (consumed bool) {
	if c.closed {
		return false
	}
	if in, ok := c.input.Wheel(dx, dy); ok {
		c.Apply(in)
		return true
	}
	along, _ := c.cfg.PagingAxis.Split(dx, dy)
	if along != 0 {
		c.ScrollBy(along)
	}
	return false
}

// HandleTouchStart begins a touch gesture.
func (c *Controller) HandleTouchStart(x, y float64) {
	if c.closed {
		return
	}
	c.input.TouchStart(x, y)
}

// HandleTouchMove reports whether the surface should suppress its default
// scrolling for this move.
func (c *Controller) HandleTouchMove(x, y float64) bool {
	if c.closed {
		return false
	}
	return c.input.TouchMove(x, y)
}

// HandleTouchEnd resolves a touch gesture and applies any resulting intent.
// It reports whether the gesture was a page swipe.
func (c *Controller) HandleTouchEnd(x, y float64) bool {
	if c.closed {
		return false
	}
	in, ok := c.input.TouchEnd(x, y)
	if ok {
		c.Apply(in)
	}
	return ok
}

// Key identifies an explicit navigation key, independent of the surface's
// key codes.
type Key uint8

const (
	KeyNone Key = iota
	KeyNext     // arrow right/down, page down, space
	KeyPrev     // arrow left/up, page up
	KeyFirst    // home
	KeyLast     // end
)

// HandleKey applies a navigation key. Next and Prev are intents and obey the
// cooldown; First and Last are explicit jumps.
func (c *Controller) HandleKey(k Key) bool {
	switch k {
	case KeyNext:
		return c.Next()
	case KeyPrev:
		return c.Prev()
	case KeyFirst:
		return c.RequestSection(0, true)
	case KeyLast:
		return c.RequestSection(c.cfg.TotalSections-1, true)
	}
	return false
}
