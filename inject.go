package sections

type syntheticKind uint8

const (
	synthWheel syntheticKind = iota
	synthTouchStart
	synthTouchMove
	synthTouchEnd
	synthScroll
	synthRequest
)

// syntheticInput is one queued input event. Exactly one is consumed per
// Update, before the frame's timers run, the same way real input arrives
// once per tick.
type syntheticInput struct {
	kind  syntheticKind
	x, y  float64
	index int
	jump  bool
}

// InjectWheel queues a wheel event (DOM convention: positive dy scrolls
// down and advances).
func (c *Controller) InjectWheel(dx, dy float64) {
	c.inject(syntheticInput{kind: synthWheel, x: dx, y: dy})
}

// InjectSwipe queues a full touch gesture: start at (fromX, fromY), moves
// linearly interpolated over frames-2 intermediate frames, and end at
// (toX, toY). The sequence consumes frames Updates; the minimum is 2.
func (c *Controller) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.inject(syntheticInput{kind: synthTouchStart, x: fromX, y: fromY})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.inject(syntheticInput{
			kind: synthTouchMove,
			x:    fromX + (toX-fromX)*t,
			y:    fromY + (toY-fromY)*t,
		})
	}
	c.inject(syntheticInput{kind: synthTouchEnd, x: toX, y: toY})
}

// InjectScroll queues a native scroll by delta along the paging axis.
func (c *Controller) InjectScroll(delta float64) {
	c.inject(syntheticInput{kind: synthScroll, x: delta})
}

// InjectRequest queues an explicit RequestSection, as a nav control would
// issue it.
func (c *Controller) InjectRequest(index int, allowDistantJump bool) {
	c.inject(syntheticInput{kind: synthRequest, index: index, jump: allowDistantJump})
}

// PendingInput returns the number of queued synthetic events.
func (c *Controller) PendingInput() int {
	return len(c.injectQueue)
}

func (c *Controller) inject(in syntheticInput) {
	if c.closed {
		return
	}
	c.injectQueue = append(c.injectQueue, in)
}

// processInjectedInput pops one event from the queue and feeds it through
// the same handlers real input uses. Returns true if an event was consumed.
func (c *Controller) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	in := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch in.kind {
	case synthWheel:
		c.HandleWheel(in.x, in.y)
	case synthTouchStart:
		c.HandleTouchStart(in.x, in.y)
	case synthTouchMove:
		c.HandleTouchMove(in.x, in.y)
	case synthTouchEnd:
		c.HandleTouchEnd(in.x, in.y)
	case synthScroll:
		c.ScrollBy(in.x)
	case synthRequest:
		c.RequestSection(in.index, in.jump)
	}
	return true
}
