package sections

import "testing"

func TestHitShapes(t *testing.T) {
	r := HitRect{X: 10, Y: 10, Width: 20, Height: 10}
	if !r.Contains(10, 10) || !r.Contains(30, 20) || r.Contains(31, 15) {
		t.Error("HitRect.Contains mismatch")
	}
	c := HitCircle{CenterX: 0, CenterY: 0, Radius: 5}
	if !c.Contains(3, 4) || c.Contains(4, 4) {
		t.Error("HitCircle.Contains mismatch")
	}
}

func TestHotspotsTopmostWins(t *testing.T) {
	var h Hotspots
	var clicked []string
	h.Add("panel", HitRect{Width: 100, Height: 100}, func() { clicked = append(clicked, "panel") })
	h.Add("dot", HitCircle{CenterX: 50, CenterY: 50, Radius: 5}, func() { clicked = append(clicked, "dot") })

	if hs, ok := h.At(50, 52); !ok || hs.Name != "dot" {
		t.Errorf("At(50, 52) = %q, %v; want dot", hs.Name, ok)
	}
	if !h.Click(50, 52) || !h.Click(10, 10) {
		t.Error("expected hits")
	}
	if h.Click(500, 500) {
		t.Error("expected miss")
	}
	if len(clicked) != 2 || clicked[0] != "dot" || clicked[1] != "panel" {
		t.Errorf("clicked = %v", clicked)
	}

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len after Clear = %d", h.Len())
	}
	if _, ok := h.At(50, 50); ok {
		t.Error("cleared hotspots should not hit")
	}
}

func TestHotspotNavDotJumps(t *testing.T) {
	c, _ := newTestController(t, DefaultConfig())
	var h Hotspots
	for i := 0; i < c.Total(); i++ {
		idx := i
		h.Add(c.Labels()[i], HitCircle{CenterX: float64(20 * i), Radius: 4}, func() { c.RequestSection(idx, true) })
	}
	h.Click(60, 0)
	if c.Current() != 3 {
		t.Errorf("Current = %d, want 3", c.Current())
	}
}
