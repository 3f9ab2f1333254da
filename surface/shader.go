package surface

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/livetwice/sections"
)

// backgroundShaderSrc draws a slow two-tone wash with a bloom that follows
// the smoothed cursor. Cursor is normalized to [0, 1].
const backgroundShaderSrc = `//kage:unit pixels
package main

var Cursor vec2
var Resolution vec2
var Time float
var Radius float
var Intensity float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	uv := dstPos.xy / Resolution
	d := uv - Cursor
	d.x = d.x * Resolution.x / Resolution.y
	bloom := Intensity * exp(-dot(d, d) * Radius * Radius * 4.0)
	wave := 0.5 + 0.5*sin(uv.x*6.0+Time*0.6)*cos(uv.y*5.0-Time*0.4)
	base := mix(vec3(0.04, 0.03, 0.09), vec3(0.16, 0.07, 0.28), wave)
	c := base + vec3(0.55, 0.35, 0.95)*bloom
	return vec4(clamp(c, vec3(0), vec3(1)), 1)
}
`

// ProbeShader compiles src once and reports the capability variant. A
// compile failure is a value, not an error: the caller draws the fallback.
func ProbeShader(src []byte) (*ebiten.Shader, sections.Capability) {
	s, err := newShader(src)
	if err != nil || s == nil {
		return nil, sections.CapabilityUnsupported
	}
	return s, sections.CapabilitySupported
}

var newShader = ebiten.NewShader

// backgroundUniforms maps the background parameters onto the shader's
// uniforms.
func backgroundUniforms(p sections.BackgroundParams, w, h int, t float64) map[string]any {
	return map[string]any{
		"Cursor":     []float32{float32(p.Cursor.X), float32(p.Cursor.Y)},
		"Resolution": []float32{float32(w), float32(h)},
		"Time":       float32(t),
		"Radius":     float32(p.Radius),
		"Intensity":  float32(p.Intensity),
	}
}
