// Package surface presents a sections controller with Ebitengine: sections
// laid out on the paging axis, navigation dots, a smoothed cursor and a
// reactive background. It reads the controller and never writes the section
// index except through the controller's methods.
package surface

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/livetwice/sections"
)

const (
	ringRadius       = 16
	dotRadius        = 4
	pointerRingScale = 1.5
	pointerDotScale  = 0.5
	pressedRingScale = 0.85

	navDotRadius  = 6
	navDotSpacing = 24
	navDotMargin  = 32

	glowRadius = 28
)

// inputMode records which pointer hardware the surface has seen. It is
// decided once: the first mouse activity or touch fixes it.
type inputMode uint8

const (
	inputUnknown inputMode = iota
	inputMouse
	inputTouch
)

var (
	baseColor   = color.NRGBA{0x0a, 0x08, 0x16, 0xff}
	panelColor  = color.NRGBA{0xff, 0xff, 0xff, 0x0c}
	accentColor = color.NRGBA{0xb4, 0x8c, 0xff, 0xff}
	revealColor = color.NRGBA{0x8a, 0x5c, 0xf6, 0x1c}
	glowColor   = color.NRGBA{0xb4, 0x8c, 0xff, 0x60}
	dimDotColor = color.NRGBA{0xff, 0xff, 0xff, 0x50}
	cursorColor = color.NRGBA{0xff, 0xff, 0xff, 0xe0}
)

// Game implements ebiten.Game around a sections.Controller.
type Game struct {
	ctrl *sections.Controller
	log  *slog.Logger

	width, height int
	wheelScale    float64

	cursor   *sections.PointerTracker
	fallback *sections.PointerTracker
	glow     *sections.Glow
	hotspots sections.Hotspots
	touch    touchState
	mode     inputMode
	mouse    sections.Vec2 // last cursor position, for activity detection
	polled   bool

	capability sections.Capability
	shader     *ebiten.Shader
	shaderOp   ebiten.DrawRectShaderOptions
	start      time.Time

	script  *sections.TestRunner
	onFrame func()
	closed  bool
}

// NewGame wires the pointer trackers and the glow to the controller's
// scheduler. The background capability is probed on the first Update.
func NewGame(ctrl *sections.Controller, cfg RunConfig) *Game {
	cfg = cfg.withDefaults()
	c := ctrl.Config()
	g := &Game{
		ctrl:       ctrl,
		log:        cfg.Logger.With("component", "surface"),
		wheelScale: cfg.WheelScale,
		cursor:     sections.NewPointerTracker(c.CursorLerp),
		fallback:   sections.NewPointerTracker(c.FallbackLerp),
		glow:       sections.NewGlow(ctrl.Scheduler(), c.GlowFade),
		script:     cfg.Script,
		start:      ctrl.Scheduler().Now(),
		onFrame:    cfg.OnFrame,
	}
	g.cursor.Start(ctrl.Scheduler(), nil)
	g.fallback.Start(ctrl.Scheduler(), nil)
	if cfg.TouchOnly {
		g.enterTouchMode()
	}
	g.resize(cfg.Width, cfg.Height)
	return g
}

// TouchOnly reports whether the surface runs without the custom cursor.
func (g *Game) TouchOnly() bool { return g.mode == inputTouch }

// enterTouchMode replaces the cursor loop with the touch glow. The fallback
// background keeps smoothing, fed by touch points.
func (g *Game) enterTouchMode() {
	g.mode = inputTouch
	g.cursor.Stop()
	g.log.Info("touch-only input, custom cursor disabled")
}

// backgroundPointer is the smoothed position the background reacts to.
func (g *Game) backgroundPointer() sections.Vec2 {
	if g.mode == inputTouch {
		return g.fallback.Rendered()
	}
	return g.cursor.Rendered()
}

// Capability returns the probed background capability.
func (g *Game) Capability() sections.Capability { return g.capability }

// Cursor returns the smoothed cursor frame.
func (g *Game) Cursor() sections.PointerFrame { return g.cursor.Frame() }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}
	if g.capability == sections.CapabilityUnknown {
		g.shader, g.capability = ProbeShader([]byte(backgroundShaderSrc))
		g.log.Info("background capability resolved", "capability", g.capability.String())
	}

	g.pollInput()
	g.ctrl.Update()
	if g.onFrame != nil {
		g.onFrame()
	}

	if g.script != nil && g.script.Done() {
		return ebiten.Termination
	}
	return nil
}

// Layout implements ebiten.Game. The screen is laid out at the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return g.width, g.height
}

func (g *Game) resize(w, h int) {
	if w <= 0 || h <= 0 || (w == g.width && h == g.height) {
		return
	}
	first := g.width == 0
	g.width, g.height = w, h

	extent := float64(w)
	if g.ctrl.Config().PagingAxis == sections.AxisVertical {
		extent = float64(h)
	}
	g.ctrl.Resize(extent)
	g.layoutHotspots()

	if first {
		centre := sections.Vec2{X: float64(w) / 2, Y: float64(h) / 2}
		g.cursor.Reset(centre)
		g.fallback.Reset(centre)
	}
}

// layoutHotspots registers the nav dots, the logo and the call to action.
// Later entries are on top.
func (g *Game) layoutHotspots() {
	g.hotspots.Clear()
	n := g.ctrl.Total()
	labels := g.ctrl.Labels()
	for i := 0; i < n; i++ {
		idx := i
		x, y := g.navDotPosition(i)
		g.hotspots.Add("nav:"+labels[i], sections.HitCircle{CenterX: x, CenterY: y, Radius: navDotRadius * 2},
			func() { g.ctrl.RequestSection(idx, true) })
	}
	g.hotspots.Add("logo", sections.HitRect{X: 16, Y: 12, Width: 96, Height: 24},
		func() { g.ctrl.RequestSection(0, true) })
	g.hotspots.Add("contact", sections.HitRect{X: float64(g.width) - 150, Y: 12, Width: 134, Height: 24},
		func() { g.ctrl.RequestSection(n-1, true) })
}

func (g *Game) navDotPosition(i int) (float64, float64) {
	n := g.ctrl.Total()
	x := float64(g.width)/2 + (float64(i)-float64(n-1)/2)*navDotSpacing
	return x, float64(g.height) - navDotMargin
}

// Close stops the frame loops owned by the game. The controller is left to
// its owner.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.cursor.Stop()
	g.fallback.Stop()
	g.glow.Close()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(baseColor)
	g.drawBackground(screen)
	g.drawSections(screen)
	g.drawChrome(screen)
	g.drawPointer(screen)
}

func (g *Game) drawBackground(dst *ebiten.Image) {
	screen := sections.Vec2{X: float64(g.width), Y: float64(g.height)}
	switch g.capability {
	case sections.CapabilitySupported:
		p := sections.MapBackground(g.capability, g.backgroundPointer(), screen)
		t := g.ctrl.Scheduler().Now().Sub(g.start).Seconds()
		g.shaderOp.Uniforms = backgroundUniforms(p, g.width, g.height, t)
		dst.DrawRectShader(g.width, g.height, g.shader, &g.shaderOp)
	case sections.CapabilityUnsupported:
		p := sections.MapBackground(g.capability, g.fallback.Rendered(), screen)
		drawRevealMask(dst, p, g.width, g.height)
	}
}

// drawRevealMask approximates the radial reveal with stacked translucent
// discs: fully revealed inside MaskInner, fading out by MaskOuter.
func drawRevealMask(dst *ebiten.Image, p sections.BackgroundParams, w, h int) {
	cx := float32(p.Cursor.X * float64(w))
	cy := float32(p.Cursor.Y * float64(h))
	size := float32(max(w, h))
	inner, outer := float32(p.MaskInner)*size, float32(p.MaskOuter)*size

	const steps = 8
	for i := 0; i <= steps; i++ {
		r := outer - (outer-inner)*float32(i)/steps
		vector.DrawFilledCircle(dst, cx, cy, r, revealColor, true)
	}
}

func (g *Game) drawSections(dst *ebiten.Image) {
	view := g.ctrl.Viewport()
	w, h := float32(g.width), float32(g.height)
	labels := g.ctrl.Labels()
	for i := range labels {
		pos := view.Position(i)
		x, y := float32(pos.X), float32(pos.Y)
		if x >= w || y >= h || x+w <= 0 || y+h <= 0 {
			continue
		}
		vector.DrawFilledRect(dst, x+24, y+56, w-48, h-120, panelColor, false)
		title := fmt.Sprintf("%02d  %s", i+1, labels[i])
		ebitenutil.DebugPrintAt(dst, title, int(x+w/2)-len(title)*3, int(y+h/2))
	}
}

func (g *Game) drawChrome(dst *ebiten.Image) {
	ebitenutil.DebugPrintAt(dst, "LIVE TWICE", 20, 16)
	ebitenutil.DebugPrintAt(dst, "Get in Touch", g.width-140, 16)

	label := g.ctrl.Label()
	ebitenutil.DebugPrintAt(dst, label, g.width/2-len(label)*3, g.height-navDotMargin-28)

	current := g.ctrl.Current()
	for i := 0; i < g.ctrl.Total(); i++ {
		x, y := g.navDotPosition(i)
		if i == current {
			vector.DrawFilledCircle(dst, float32(x), float32(y), navDotRadius, accentColor, true)
			continue
		}
		vector.StrokeCircle(dst, float32(x), float32(y), navDotRadius, 1.5, dimDotColor, true)
	}
}

func (g *Game) drawPointer(dst *ebiten.Image) {
	if g.glow.Visible() {
		p := g.glow.Position()
		c := glowColor
		c.A = uint8(float32(c.A) * g.glow.Alpha())
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), glowRadius, c, true)
	}
	if g.mode == inputTouch {
		return
	}

	c := cursorMarks(g.cursor.Frame())
	vector.StrokeCircle(dst, c.x, c.y, c.ring, 1.5, cursorColor, true)
	vector.DrawFilledCircle(dst, c.x, c.y, c.dot, cursorColor, true)
}

// cursorMark is where and how large the ring and the dot are drawn. Both
// share the smoothed position.
type cursorMark struct {
	x, y      float32
	ring, dot float32
}

func cursorMarks(f sections.PointerFrame) cursorMark {
	ring, dot := float32(ringRadius), float32(dotRadius)
	if f.Pointer {
		ring *= pointerRingScale
		dot *= pointerDotScale
	}
	if f.Pressed {
		ring *= pressedRingScale
	}
	return cursorMark{x: float32(f.Position.X), y: float32(f.Position.Y), ring: ring, dot: dot}
}
