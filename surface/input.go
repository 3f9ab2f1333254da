package surface

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/livetwice/sections"
)

// Ebitengine input hooks, replaced in tests.
var (
	cursorPosition              = ebiten.CursorPosition
	isMouseButtonJustPressed    = inpututil.IsMouseButtonJustPressed
	isMouseButtonJustReleased   = inpututil.IsMouseButtonJustReleased
	wheel                       = ebiten.Wheel
	isKeyJustPressed            = inpututil.IsKeyJustPressed
	appendJustPressedTouchIDs   = inpututil.AppendJustPressedTouchIDs
	isTouchJustReleased         = inpututil.IsTouchJustReleased
	touchPosition               = ebiten.TouchPosition
	touchPositionInPreviousTick = inpututil.TouchPositionInPreviousTick
)

var keyBindings = []struct {
	key ebiten.Key
	nav sections.Key
}{
	{ebiten.KeyArrowRight, sections.KeyNext},
	{ebiten.KeyArrowDown, sections.KeyNext},
	{ebiten.KeyPageDown, sections.KeyNext},
	{ebiten.KeySpace, sections.KeyNext},
	{ebiten.KeyArrowLeft, sections.KeyPrev},
	{ebiten.KeyArrowUp, sections.KeyPrev},
	{ebiten.KeyPageUp, sections.KeyPrev},
	{ebiten.KeyHome, sections.KeyFirst},
	{ebiten.KeyEnd, sections.KeyLast},
}

// touchState follows the primary touch. Only one finger drives gestures;
// additional touches are ignored until it lifts.
type touchState struct {
	id       ebiten.TouchID
	active   bool
	start    sections.Vec2
	last     sections.Vec2
	touchIDs []ebiten.TouchID
}

// tapSlop is how far a touch may travel and still count as a tap on a
// hotspot.
const tapSlop = 10.0

// pollInput reads one tick of Ebitengine input and feeds it to the
// controller, the pointer trackers, the glow and the hotspots.
func (g *Game) pollInput() {
	g.pollMouse()
	g.pollWheel()
	g.pollTouch()
	g.pollKeys()
}

func (g *Game) pollMouse() {
	if g.mode == inputTouch {
		return
	}
	mx, my := cursorPosition()
	x, y := float64(mx), float64(my)
	pos := sections.Vec2{X: x, Y: y}
	pressed := isMouseButtonJustPressed(ebiten.MouseButtonLeft)
	// The first poll only sets the baseline; a mouse shows itself by moving
	// or clicking after that.
	if g.mode == inputUnknown && (pressed || (g.polled && pos != g.mouse)) {
		g.mode = inputMouse
	}
	g.mouse, g.polled = pos, true

	_, over := g.hotspots.At(x, y)
	g.cursor.Move(x, y, over)
	g.fallback.Move(x, y, over)

	if pressed {
		g.cursor.Press()
		g.hotspots.Click(x, y)
	}
	if isMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.cursor.Release()
	}
}

func (g *Game) pollWheel() {
	dx, dy := wheel()
	if dx == 0 && dy == 0 {
		return
	}
	// Ebitengine reports wheel-away as positive; the controller expects
	// positive to mean scrolling down.
	g.ctrl.HandleWheel(-dx*g.wheelScale, -dy*g.wheelScale)
}

func (g *Game) pollTouch() {
	t := &g.touch
	if !t.active {
		t.touchIDs = appendJustPressedTouchIDs(t.touchIDs[:0])
		if len(t.touchIDs) > 0 {
			t.id = t.touchIDs[0]
			t.active = true
			tx, ty := touchPosition(t.id)
			t.start = sections.Vec2{X: float64(tx), Y: float64(ty)}
			t.last = t.start
			if g.mode == inputUnknown {
				g.enterTouchMode()
			}
			g.ctrl.HandleTouchStart(t.start.X, t.start.Y)
			g.touchPointer(t.start)
		}
		return
	}

	if isTouchJustReleased(t.id) {
		tx, ty := touchPositionInPreviousTick(t.id)
		end := sections.Vec2{X: float64(tx), Y: float64(ty)}
		t.active = false
		if g.ctrl.HandleTouchEnd(end.X, end.Y) {
			return
		}
		if dx, dy := end.X-t.start.X, end.Y-t.start.Y; dx*dx+dy*dy <= tapSlop*tapSlop {
			g.hotspots.Click(end.X, end.Y)
		}
		return
	}

	tx, ty := touchPosition(t.id)
	pos := sections.Vec2{X: float64(tx), Y: float64(ty)}
	if pos == t.last {
		return
	}
	t.last = pos
	g.touchPointer(pos)
	// There is no default touch scrolling to suppress here; the result only
	// matters to surfaces that have one.
	g.ctrl.HandleTouchMove(pos.X, pos.Y)
}

func (g *Game) pollKeys() {
	for _, b := range keyBindings {
		if isKeyJustPressed(b.key) {
			g.ctrl.HandleKey(b.nav)
		}
	}
}

// touchPointer shows the glow at p and, without a mouse, steers the
// background there.
func (g *Game) touchPointer(p sections.Vec2) {
	g.glow.Touch(p.X, p.Y)
	if g.mode == inputTouch {
		g.fallback.Move(p.X, p.Y, false)
	}
}
