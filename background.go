package sections

import "math"

const (
	bloomRadius    = 2.2
	bloomIntensity = 1.0
	maskInner      = 0.05 // fully revealed inside this radius (fraction of screen)
	maskOuter      = 0.15 // fully covered beyond this radius
)

// BackgroundParams are the per-frame inputs of the reactive background.
type BackgroundParams struct {
	Mode Capability
	// Cursor is the smoothed pointer, normalized to [0, 1] on both axes.
	Cursor Vec2
	// Radius and Intensity drive the shader's cursor bloom.
	Radius, Intensity float64
	// MaskInner and MaskOuter bound the fallback's radial reveal, as
	// fractions of the screen.
	MaskInner, MaskOuter float64
}

// Draws reports whether anything should be drawn at all.
func (p BackgroundParams) Draws() bool {
	return p.Mode != CapabilityUnknown
}

// MapBackground maps a smoothed pointer position in screen pixels to the
// background parameters for the probed capability. It holds no state.
func MapBackground(capability Capability, cursor, screen Vec2) BackgroundParams {
	p := BackgroundParams{Mode: capability}
	if capability == CapabilityUnknown {
		return p
	}
	p.Cursor = Vec2{X: normalize(cursor.X, screen.X), Y: normalize(cursor.Y, screen.Y)}
	switch capability {
	case CapabilitySupported:
		p.Radius = bloomRadius
		p.Intensity = bloomIntensity
	case CapabilityUnsupported:
		p.MaskInner = maskInner
		p.MaskOuter = maskOuter
	}
	return p
}

func normalize(v, size float64) float64 {
	if size <= 0 {
		return 0.5
	}
	return math.Max(0, math.Min(v/size, 1))
}
