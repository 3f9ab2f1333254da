package sections

// HitShape is a clickable area in screen coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle. Edges count.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Hotspot is one interactive element: a nav dot, the logo, a call to action.
type Hotspot struct {
	Name    string
	Shape   HitShape
	OnClick func()
}

// Hotspots answers "is the pointer over something interactive" for the
// cursor affordance and routes clicks. Later entries are on top.
type Hotspots struct {
	items []Hotspot
}

// Add registers a hotspot on top of the existing ones.
func (h *Hotspots) Add(name string, shape HitShape, onClick func()) {
	h.items = append(h.items, Hotspot{Name: name, Shape: shape, OnClick: onClick})
}

// At returns the topmost hotspot containing (x, y).
func (h *Hotspots) At(x, y float64) (Hotspot, bool) {
	for i := len(h.items) - 1; i >= 0; i-- {
		if h.items[i].Shape.Contains(x, y) {
			return h.items[i], true
		}
	}
	return Hotspot{}, false
}

// Click runs the topmost hotspot's OnClick and reports whether one was hit.
func (h *Hotspots) Click(x, y float64) bool {
	hs, ok := h.At(x, y)
	if !ok {
		return false
	}
	if hs.OnClick != nil {
		hs.OnClick()
	}
	return true
}

// Len returns the number of hotspots.
func (h *Hotspots) Len() int { return len(h.items) }

// Clear removes every hotspot.
func (h *Hotspots) Clear() {
	clear(h.items)
	h.items = h.items[:0]
}
