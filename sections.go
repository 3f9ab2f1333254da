package sections

import "fmt"

// Vec2 is a 2D vector used for pointer positions and screen sizes.
type Vec2 struct {
	X, Y float64
}

// Axis is the direction along which sections are laid out or gestures are
// read.
type Axis uint8

const (
	AxisHorizontal Axis = iota // left to right
	AxisVertical               // top to bottom
)

// String returns "horizontal" or "vertical".
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// ParseAxis parses "horizontal"/"h" or "vertical"/"v".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "h":
		return AxisHorizontal, nil
	case "vertical", "v":
		return AxisVertical, nil
	}
	return 0, fmt.Errorf("parse axis: unknown axis %q", s)
}

// Split returns the component of (x, y) along a and the component across it.
func (a Axis) Split(x, y float64) (along, across float64) {
	if a == AxisVertical {
		return y, x
	}
	return x, y
}

// Intent is a normalized, direction-only paging signal.
type Intent int8

const (
	IntentRetreat Intent = -1 // previous section
	IntentNone    Intent = 0
	IntentAdvance Intent = 1 // next section
)

func (i Intent) String() string {
	switch i {
	case IntentRetreat:
		return "retreat"
	case IntentAdvance:
		return "advance"
	default:
		return "none"
	}
}

// Capability is the result of the one-time graphics capability probe that
// picks between the shader background and the fallback mask.
type Capability uint8

const (
	CapabilityUnknown     Capability = iota // probe has not run; draw nothing
	CapabilitySupported                     // shader background
	CapabilityUnsupported                   // radial reveal fallback
)

func (c Capability) String() string {
	switch c {
	case CapabilitySupported:
		return "supported"
	case CapabilityUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// State is the controller's transition state.
type State uint8

const (
	StateIdle   State = iota // no transition in flight
	StateLocked              // a transition or snap correction holds the lock
)

func (s State) String() string {
	if s == StateLocked {
		return "locked"
	}
	return "idle"
}

// Cause records what moved the current section index.
type Cause uint8

const (
	CauseRequest Cause = iota // explicit RequestSection
	CauseIntent               // wheel, swipe or key intent
	CauseScroll               // native scroll position sample
	CauseSnap                 // snap reconciler correction
)

func (c Cause) String() string {
	switch c {
	case CauseRequest:
		return "request"
	case CauseIntent:
		return "intent"
	case CauseScroll:
		return "scroll"
	case CauseSnap:
		return "snap"
	default:
		return fmt.Sprintf("Cause(%d)", uint8(c))
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
