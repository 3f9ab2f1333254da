package sections

import "time"

// TransitionLock is the scroll-lock guard: while held, no transition may
// start. It records when the last transition started for the intent
// cooldown and releases itself after the settle duration.
type TransitionLock struct {
	held      bool
	started   bool
	startedAt time.Time
	release   *Task
}

// Held reports whether a transition is in flight.
func (l *TransitionLock) Held() bool {
	return l.held
}

// InCooldown reports whether now is within cooldown of the last acquire.
func (l *TransitionLock) InCooldown(now time.Time, cooldown time.Duration) bool {
	return l.started && now.Sub(l.startedAt) < cooldown
}

// acquire takes the lock and schedules its release after settle. onRelease
// runs after the lock is cleared.
func (l *TransitionLock) acquire(s *Scheduler, settle time.Duration, onRelease func()) {
	l.release.Cancel()
	l.held = true
	l.started = true
	l.startedAt = s.Now()
	l.release = s.AfterFunc(settle, func() {
		l.held = false
		l.release = nil
		if onRelease != nil {
			onRelease()
		}
	})
}

// reset drops the lock without running the release callback.
func (l *TransitionLock) reset() {
	l.release.Cancel()
	l.release = nil
	l.held = false
}
