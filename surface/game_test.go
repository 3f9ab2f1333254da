package surface

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/livetwice/sections"
)

// fakeInput replaces the Ebitengine input hooks for one test.
type fakeInput struct {
	cursorX, cursorY int
	pressed          bool
	released         bool
	wheelX, wheelY   float64
	keys             map[ebiten.Key]bool

	newTouches []ebiten.TouchID
	touchPos   map[ebiten.TouchID][2]int
	touchPrev  map[ebiten.TouchID][2]int
	touchEnded map[ebiten.TouchID]bool
}

func stubInput(t *testing.T) *fakeInput {
	t.Helper()
	f := &fakeInput{
		keys:       map[ebiten.Key]bool{},
		touchPos:   map[ebiten.TouchID][2]int{},
		touchPrev:  map[ebiten.TouchID][2]int{},
		touchEnded: map[ebiten.TouchID]bool{},
	}
	saved := []func(){
		restore(&cursorPosition), restore(&isMouseButtonJustPressed), restore(&isMouseButtonJustReleased),
		restore(&wheel), restore(&isKeyJustPressed), restore(&appendJustPressedTouchIDs),
		restore(&isTouchJustReleased), restore(&touchPosition), restore(&touchPositionInPreviousTick),
		restore(&newShader),
	}
	t.Cleanup(func() {
		for _, r := range saved {
			r()
		}
	})

	cursorPosition = func() (int, int) { return f.cursorX, f.cursorY }
	isMouseButtonJustPressed = func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && f.pressed }
	isMouseButtonJustReleased = func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && f.released }
	wheel = func() (float64, float64) { return f.wheelX, f.wheelY }
	isKeyJustPressed = func(k ebiten.Key) bool { return f.keys[k] }
	appendJustPressedTouchIDs = func(ids []ebiten.TouchID) []ebiten.TouchID { return append(ids, f.newTouches...) }
	isTouchJustReleased = func(id ebiten.TouchID) bool { return f.touchEnded[id] }
	touchPosition = func(id ebiten.TouchID) (int, int) { p := f.touchPos[id]; return p[0], p[1] }
	touchPositionInPreviousTick = func(id ebiten.TouchID) (int, int) { p := f.touchPrev[id]; return p[0], p[1] }
	newShader = func([]byte) (*ebiten.Shader, error) { return nil, errors.New("no graphics") }
	return f
}

func restore[T any](p *T) func() {
	v := *p
	return func() { *p = v }
}

// endFrame clears the just-pressed style inputs, as a new tick would.
func (f *fakeInput) endFrame() {
	f.pressed, f.released = false, false
	f.wheelX, f.wheelY = 0, 0
	clear(f.keys)
	f.newTouches = f.newTouches[:0]
	for id, p := range f.touchPos {
		f.touchPrev[id] = p
	}
	for id := range f.touchEnded {
		delete(f.touchPos, id)
		delete(f.touchPrev, id)
	}
	clear(f.touchEnded)
}

type harness struct {
	t     *testing.T
	in    *fakeInput
	clk   *sections.ManualClock
	ctrl  *sections.Controller
	game  *Game
	frame time.Duration
}

func newHarness(t *testing.T, cfg RunConfig) *harness {
	t.Helper()
	in := stubInput(t)
	clk := sections.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctrl, err := sections.New(sections.DefaultConfig(), sections.WithClock(clk))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ctrl.Close)
	if cfg.Width == 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	g := NewGame(ctrl, cfg)
	t.Cleanup(g.Close)
	in.cursorX, in.cursorY = 400, 300
	return &harness{t: t, in: in, clk: clk, ctrl: ctrl, game: g, frame: 16 * time.Millisecond}
}

// step runs one tick and reports the Update result.
func (h *harness) step() error {
	h.clk.Advance(h.frame)
	err := h.game.Update()
	h.in.endFrame()
	return err
}

func (h *harness) settle() {
	for i := 0; i < 60; i++ {
		h.step()
	}
}

func TestGameProbesOnce(t *testing.T) {
	h := newHarness(t, RunConfig{})
	if h.game.Capability() != sections.CapabilityUnknown {
		t.Fatal("capability should be unknown before the first update")
	}
	probes := 0
	newShader = func([]byte) (*ebiten.Shader, error) {
		probes++
		return nil, errors.New("unsupported")
	}
	h.step()
	h.step()
	if h.game.Capability() != sections.CapabilityUnsupported {
		t.Errorf("Capability = %v, want unsupported", h.game.Capability())
	}
	if probes != 1 {
		t.Errorf("probed %d times, want 1", probes)
	}
}

func TestGameLayoutSetsExtent(t *testing.T) {
	h := newHarness(t, RunConfig{})
	if got := h.ctrl.Viewport().Extent; got != 800 {
		t.Errorf("Extent = %f, want 800", got)
	}
	w, ht := h.game.Layout(1024, 768)
	if w != 1024 || ht != 768 {
		t.Errorf("Layout = %dx%d", w, ht)
	}
	if got := h.ctrl.Viewport().Extent; got != 1024 {
		t.Errorf("Extent = %f, want 1024", got)
	}
}

func TestGameWheelPages(t *testing.T) {
	h := newHarness(t, RunConfig{})
	h.in.wheelY = -1 // one notch towards the user
	h.step()
	if h.ctrl.Current() != 1 {
		t.Errorf("Current = %d, want 1", h.ctrl.Current())
	}
}

func TestGameKeys(t *testing.T) {
	h := newHarness(t, RunConfig{})
	h.in.keys[ebiten.KeyEnd] = true
	h.step()
	if h.ctrl.Current() != 3 {
		t.Fatalf("Current = %d, want 3", h.ctrl.Current())
	}
	h.settle()
	h.in.keys[ebiten.KeyArrowLeft] = true
	h.step()
	if h.ctrl.Current() != 2 {
		t.Errorf("Current = %d, want 2", h.ctrl.Current())
	}
}

func TestGameNavDotClick(t *testing.T) {
	h := newHarness(t, RunConfig{})
	x, y := h.game.navDotPosition(2)
	h.in.cursorX, h.in.cursorY = int(x), int(y)
	h.in.pressed = true
	h.step()

	if h.ctrl.Current() != 2 {
		t.Errorf("Current = %d, want 2", h.ctrl.Current())
	}
	f := h.game.Cursor()
	if !f.Pointer || !f.Pressed {
		t.Errorf("cursor frame = %+v, want pointer and pressed", f)
	}

	h.in.released = true
	h.step()
	if h.game.Cursor().Pressed {
		t.Error("release should clear pressed")
	}
}

func TestGameCursorSmoothing(t *testing.T) {
	h := newHarness(t, RunConfig{})
	h.in.cursorX, h.in.cursorY = 0, 300
	h.step()
	x := h.game.Cursor().Position.X
	if x >= 400 || x <= 0 {
		t.Errorf("smoothed X = %f, want between target and start", x)
	}
	if fx := h.game.fallback.Rendered().X; fx <= x {
		t.Errorf("fallback X = %f should trail cursor X = %f", fx, x)
	}
}

func TestGameSwipe(t *testing.T) {
	h := newHarness(t, RunConfig{})
	const id ebiten.TouchID = 7

	h.in.newTouches = append(h.in.newTouches, id)
	h.in.touchPos[id] = [2]int{100, 500}
	h.step()
	if !h.game.glow.Visible() {
		t.Error("touch should show the glow")
	}

	h.in.touchPos[id] = [2]int{100, 440}
	h.step()

	h.in.touchPrev[id] = [2]int{100, 380}
	h.in.touchEnded[id] = true
	h.step()
	if h.ctrl.Current() != 1 {
		t.Errorf("Current = %d, want 1", h.ctrl.Current())
	}

	h.settle()
	if h.game.glow.Visible() {
		t.Error("glow should fade")
	}
}

func TestGameTapLogo(t *testing.T) {
	h := newHarness(t, RunConfig{})
	h.ctrl.RequestSection(2, true)
	h.settle()

	const id ebiten.TouchID = 1
	h.in.newTouches = append(h.in.newTouches, id)
	h.in.touchPos[id] = [2]int{30, 20}
	h.step()
	h.in.touchEnded[id] = true
	h.step()
	if h.ctrl.Current() != 0 {
		t.Errorf("Current = %d, want 0", h.ctrl.Current())
	}
}

func TestGameScriptTerminates(t *testing.T) {
	runner, err := sections.LoadTestScript([]byte(`{"steps": [
		{"action": "goto", "index": 1},
		{"action": "wait", "frames": 5},
		{"action": "expect", "index": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	h := newHarness(t, RunConfig{Script: runner})
	h.ctrl.SetTestRunner(runner)

	for i := 0; i < 100; i++ {
		if err := h.step(); err != nil {
			if !errors.Is(err, ebiten.Termination) {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(runner.Failures()) != 0 {
				t.Errorf("failures: %v", runner.Failures())
			}
			return
		}
	}
	t.Fatal("script never finished")
}

func TestGameClose(t *testing.T) {
	h := newHarness(t, RunConfig{})
	h.game.Close()
	if h.game.cursor.Running() || h.game.fallback.Running() {
		t.Error("trackers should stop on Close")
	}
	if err := h.step(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Close = %v, want Termination", err)
	}
	h.game.Close()
}

func TestOnFrame(t *testing.T) {
	frames := 0
	h := newHarness(t, RunConfig{OnFrame: func() { frames++ }})
	h.step()
	h.step()
	if frames != 2 {
		t.Errorf("OnFrame ran %d times, want 2", frames)
	}
}

func TestRunConfigDefaults(t *testing.T) {
	c := RunConfig{}.withDefaults()
	if c.Width != 1280 || c.Height != 720 || c.WheelScale != 100 || c.Title == "" || c.Logger == nil {
		t.Errorf("defaults = %+v", c)
	}
}

func TestBackgroundUniforms(t *testing.T) {
	p := sections.MapBackground(sections.CapabilitySupported, sections.Vec2{X: 400, Y: 150}, sections.Vec2{X: 800, Y: 600})
	u := backgroundUniforms(p, 800, 600, 2)
	cur := u["Cursor"].([]float32)
	if cur[0] != 0.5 || cur[1] != 0.25 {
		t.Errorf("Cursor = %v", cur)
	}
	if u["Radius"].(float32) != 2.2 || u["Time"].(float32) != 2 {
		t.Errorf("uniforms = %v", u)
	}
}

func TestGameTouchOnlyDetected(t *testing.T) {
	h := newHarness(t, RunConfig{})
	h.step() // cursor baseline, no mouse activity yet
	if h.game.TouchOnly() {
		t.Fatal("surface should not start touch-only")
	}

	const id ebiten.TouchID = 3
	h.in.newTouches = append(h.in.newTouches, id)
	h.in.touchPos[id] = [2]int{200, 100}
	h.step()
	if !h.game.TouchOnly() {
		t.Fatal("a touch before any mouse activity should switch to touch-only")
	}
	if h.game.cursor.Running() {
		t.Error("cursor loop should stop in touch-only mode")
	}
	if !h.game.fallback.Running() {
		t.Error("background smoothing should keep running")
	}

	before := h.game.Cursor().Position
	h.in.cursorX, h.in.cursorY = 10, 10
	h.in.touchPos[id] = [2]int{220, 100}
	h.step()
	if got := h.game.Cursor().Position; got != before {
		t.Errorf("cursor moved to %v in touch-only mode", got)
	}
	if bg := h.game.backgroundPointer(); bg.X >= 400 || bg.Y >= 300 {
		t.Errorf("background pointer %v should move from the centre towards the touch", bg)
	}
}

func TestGameMouseKeepsCursor(t *testing.T) {
	h := newHarness(t, RunConfig{})
	h.step()
	h.in.cursorX = 420
	h.step()

	const id ebiten.TouchID = 4
	h.in.newTouches = append(h.in.newTouches, id)
	h.in.touchPos[id] = [2]int{200, 100}
	h.step()
	if h.game.TouchOnly() {
		t.Error("touch after mouse movement should keep the cursor")
	}
	if !h.game.cursor.Running() {
		t.Error("cursor loop should keep running")
	}
	if !h.game.glow.Visible() {
		t.Error("touch should still show the glow")
	}
}

func TestGameTouchOnlyConfig(t *testing.T) {
	h := newHarness(t, RunConfig{TouchOnly: true})
	if !h.game.TouchOnly() || h.game.cursor.Running() {
		t.Fatal("TouchOnly config should start without the cursor loop")
	}
	h.in.pressed = true
	h.step()
	if h.game.Cursor().Pressed {
		t.Error("mouse input should be ignored in touch-only mode")
	}
}

func TestGameCursorMarksUseSmoothedPosition(t *testing.T) {
	h := newHarness(t, RunConfig{})
	h.step()
	h.in.cursorX, h.in.cursorY = 0, 0
	h.step()

	f := h.game.Cursor()
	if f.Position.X <= 0 || f.Position.Y <= 0 {
		t.Fatalf("smoothed position %v should trail the raw one", f.Position)
	}
	m := cursorMarks(f)
	if m.x != float32(f.Position.X) || m.y != float32(f.Position.Y) {
		t.Errorf("marks at (%v, %v), want smoothed %v", m.x, m.y, f.Position)
	}
}

func TestCursorMarksAffordance(t *testing.T) {
	tests := []struct {
		name      string
		frame     sections.PointerFrame
		ring, dot float32
	}{
		{"idle", sections.PointerFrame{}, ringRadius, dotRadius},
		{"pointer", sections.PointerFrame{Pointer: true}, ringRadius * pointerRingScale, dotRadius * pointerDotScale},
		{"pressed", sections.PointerFrame{Pressed: true}, ringRadius * pressedRingScale, dotRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := cursorMarks(tt.frame)
			if m.ring != tt.ring || m.dot != tt.dot {
				t.Errorf("ring=%v dot=%v, want %v %v", m.ring, m.dot, tt.ring, tt.dot)
			}
		})
	}
}
