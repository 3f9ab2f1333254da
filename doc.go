// Package sections drives a paged, full-viewport section presentation: a row
// (or column) of sections navigated by wheel, touch, native scroll and
// explicit controls, plus the smoothed pointer that feeds the custom cursor
// and the reactive background.
//
// # Quick start
//
// Create a [Controller] from a [Config] and call [Controller.Update] once per
// frame from your game loop:
//
//	ctrl, err := sections.New(sections.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctrl.Close()
//
//	// each frame
//	ctrl.HandleWheel(dx, dy)
//	ctrl.Update()
//	draw(ctrl.Current(), ctrl.Offset())
//
// The [surface] package runs a complete Ebitengine presentation around a
// controller and the [tui] package does the same in a terminal.
//
// # Transitions
//
// Only one transition is ever in flight. [Controller.RequestSection] starts an
// animated scroll and takes the transition lock for
// [Config.TransitionDuration]; every request, intent or snap correction that
// arrives while the lock is held is dropped, never queued. Wheel and swipe
// intents are additionally dropped during [Config.Cooldown] after the previous
// transition started.
//
// # Scheduling
//
// Nothing here blocks and nothing runs on another goroutine. Deferred work
// (lock release, snap debounce, scroll sampling, glow fade, per-frame loops)
// is a cancellable [Task] on the controller's [Scheduler], which advances when
// [Controller.Update] is called. Tests drive time with a [ManualClock].
//
// [surface]: https://pkg.go.dev/github.com/livetwice/sections/surface
// [tui]: https://pkg.go.dev/github.com/livetwice/sections/tui
package sections
