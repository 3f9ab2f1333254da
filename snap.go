package sections

import "math"

// OnScroll reports that the user scrolled the container natively to offset
// (momentum, scrollbar, trackpad). The viewport follows immediately,
// cancelling any animation; the index is resampled on the next frame and the
// snap reconciler re-armed.
func (c *Controller) OnScroll(offset float64) {
	if c.closed {
		return
	}
	c.view.SetOffset(offset)
	c.noteScroll(c.view.Offset())
}

// ScrollBy scrolls natively by delta along the paging axis.
func (c *Controller) ScrollBy(delta float64) {
	c.OnScroll(c.view.Offset() + delta)
}

// noteScroll records a scroll position. Samples are coalesced to one per
// frame (the latest wins) and every sample restarts the snap debounce.
func (c *Controller) noteScroll(offset float64) {
	c.pendingOffset = offset
	if !c.sampleTask.Pending() {
		c.sampleTask = c.sched.NextFrame(c.sampleScroll)
	}
	c.armSnap()
}

// sampleScroll converts the latest scroll offset into a section index. While
// a transition holds the lock the optimistic index set by the request is
// kept; the animation passing over intermediate sections must not flicker
// the indicator.
func (c *Controller) sampleScroll() {
	if c.lock.Held() || c.view.Extent <= 0 {
		return
	}
	idx := int(math.Round(c.pendingOffset / c.view.Extent))
	if idx < 0 || idx >= c.cfg.TotalSections {
		return
	}
	c.setCurrent(idx, CauseScroll)
}

// armSnap replaces any pending reconcile with one due after the debounce.
func (c *Controller) armSnap() {
	c.snapTask.Cancel()
	c.snapTask = c.sched.AfterFunc(c.cfg.SnapDebounce, c.OnPositionSettled)
}

// OnPositionSettled runs the snap reconciler: when the most visible section
// is more than SnapVisibilityThreshold visible, within one of the current
// section, and misaligned by more than SnapTolerance of a section, the
// viewport is scrolled to align it under the transition lock. A held lock
// wins; the correction is dropped, not queued.
func (c *Controller) OnPositionSettled() {
	if c.closed {
		return
	}
	extent := c.view.Extent
	offset := c.view.Offset()

	idx, vis := mostVisible(MeasureVisibility(offset, extent, c.cfg.TotalSections))
	if vis <= c.cfg.SnapVisibilityThreshold {
		return
	}
	if absInt(idx-c.current) > 1 {
		return
	}
	target := c.view.Origin(idx)
	if math.Abs(target-offset) <= c.cfg.SnapTolerance*extent {
		return
	}
	if c.lock.Held() {
		c.debug("snap dropped", "reason", "locked", "index", idx)
		return
	}

	c.startTransition(target)
	c.setCurrent(idx, CauseSnap)
	c.debug("snap correction", "index", idx, "from", offset, "to", target)
}
