package sections

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollEase approximates a browser's smooth scroll.
var scrollEase ease.TweenFunc = ease.OutCubic

// scrollAnim holds an active scroll-to tween.
type scrollAnim struct {
	tween  *gween.Tween
	target float64
}

// Viewport is the scroll container: a window one section long sliding over
// contiguous sections on the paging axis.
type Viewport struct {
	// Axis is the paging axis.
	Axis Axis
	// Extent is the size of the viewport, and of every section, along Axis.
	Extent float64
	// Sections is the number of sections laid out on Axis.
	Sections int

	offset float64
	anim   *scrollAnim
}

func newViewport(axis Axis, extent float64, sections int) *Viewport {
	return &Viewport{Axis: axis, Extent: extent, Sections: sections}
}

// Offset returns the scroll offset along the paging axis.
func (v *Viewport) Offset() float64 {
	return v.offset
}

// MaxOffset returns the offset that aligns the last section.
func (v *Viewport) MaxOffset() float64 {
	if v.Sections < 1 {
		return 0
	}
	return float64(v.Sections-1) * v.Extent
}

// Origin returns the offset that aligns section i.
func (v *Viewport) Origin(i int) float64 {
	return float64(i) * v.Extent
}

// NearestSection rounds the offset to a section index. The result may fall
// outside [0, Sections) only if the offset does.
func (v *Viewport) NearestSection() int {
	if v.Extent <= 0 {
		return 0
	}
	return int(math.Round(v.offset / v.Extent))
}

// Position returns the top-left corner of section i relative to the
// viewport, for drawing.
func (v *Viewport) Position(i int) Vec2 {
	p := v.Origin(i) - v.offset
	if v.Axis == AxisVertical {
		return Vec2{Y: p}
	}
	return Vec2{X: p}
}

// Animating reports whether a ScrollTo is in progress.
func (v *Viewport) Animating() bool {
	return v.anim != nil
}

// ScrollTo animates the offset to target over duration.
func (v *Viewport) ScrollTo(target float64, duration time.Duration, easeFn ease.TweenFunc) {
	target = v.clamp(target)
	v.anim = &scrollAnim{
		tween:  gween.New(float32(v.offset), float32(target), float32(duration.Seconds()), easeFn),
		target: target,
	}
}

// SetOffset moves the viewport immediately, cancelling any animation.
func (v *Viewport) SetOffset(offset float64) {
	v.anim = nil
	v.offset = v.clamp(offset)
}

// ScrollBy moves the viewport immediately by delta, cancelling any
// animation.
func (v *Viewport) ScrollBy(delta float64) {
	v.SetOffset(v.offset + delta)
}

// update advances the scroll animation and reports whether the offset moved.
func (v *Viewport) update(dt time.Duration) bool {
	if v.anim == nil {
		return false
	}
	prev := v.offset
	val, done := v.anim.tween.Update(float32(dt.Seconds()))
	if done {
		v.offset = v.anim.target
		v.anim = nil
	} else {
		v.offset = float64(val)
	}
	return v.offset != prev
}

func (v *Viewport) clamp(offset float64) float64 {
	return math.Max(0, math.Min(offset, v.MaxOffset()))
}
