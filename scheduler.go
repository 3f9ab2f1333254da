package sections

import (
	"sort"
	"time"
)

type taskKind uint8

const (
	taskTimer      taskKind = iota // fires once when due
	taskNextFrame                  // fires once on the next tick
	taskEveryFrame                 // fires every tick until cancelled
)

// Task is a deferred callback owned by a Scheduler. The zero value and nil
// are both valid, already-finished tasks.
type Task struct {
	kind    taskKind
	id      uint64
	due     time.Time
	fn      func()
	frameFn func(dt time.Duration)
	done    bool
}

// Cancel stops the task from firing. It reports whether the task was still
// pending. Safe on nil.
func (t *Task) Cancel() bool {
	if t == nil || t.done {
		return false
	}
	t.done = true
	return true
}

// Pending reports whether the task will still fire. False for nil.
func (t *Task) Pending() bool {
	return t != nil && !t.done
}

// Scheduler is a single-threaded queue of timers and per-frame callbacks,
// advanced by Tick. Callbacks run on the goroutine that calls Tick; anything
// they schedule runs no earlier than the following Tick.
type Scheduler struct {
	clock  Clock
	timers []*Task // sorted by due, then insertion order
	frames []*Task
	due    []*Task
	active []*Task
	nextID uint64

	lastTick time.Time
	ticked   bool
	closed   bool
}

// NewScheduler creates a scheduler reading time from clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Now returns the scheduler clock's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc runs fn on the first Tick at or after now+d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Task {
	t := s.newTask(taskTimer)
	if t.done {
		return t
	}
	t.due = s.clock.Now().Add(d)
	t.fn = fn
	i := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].due.After(t.due)
	})
	s.timers = append(s.timers, nil)
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
	return t
}

// NextFrame runs fn once on the next Tick.
func (s *Scheduler) NextFrame(fn func()) *Task {
	t := s.newTask(taskNextFrame)
	if t.done {
		return t
	}
	t.fn = fn
	s.frames = append(s.frames, t)
	return t
}

// EveryFrame runs fn on every Tick, with the time elapsed since the previous
// Tick, until the returned task is cancelled.
func (s *Scheduler) EveryFrame(fn func(dt time.Duration)) *Task {
	t := s.newTask(taskEveryFrame)
	if t.done {
		return t
	}
	t.frameFn = fn
	s.frames = append(s.frames, t)
	return t
}

func (s *Scheduler) newTask(kind taskKind) *Task {
	s.nextID++
	// Tasks created after Close are born finished.
	return &Task{kind: kind, id: s.nextID, done: s.closed}
}

// Tick fires every due timer in due order, then every frame callback in
// registration order. It returns the time elapsed since the previous Tick
// (zero on the first).
func (s *Scheduler) Tick() time.Duration {
	if s.closed {
		return 0
	}
	now := s.clock.Now()
	var dt time.Duration
	if s.ticked {
		dt = now.Sub(s.lastTick)
	}
	s.lastTick = now
	s.ticked = true

	n := 0
	for n < len(s.timers) && !s.timers[n].due.After(now) {
		n++
	}
	s.due = append(s.due[:0], s.timers[:n]...)
	copy(s.timers, s.timers[n:])
	for i := len(s.timers) - n; i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = s.timers[:len(s.timers)-n]

	// Frames registered by a timer below wait for the next Tick.
	s.active = append(s.active[:0], s.frames...)
	for _, t := range s.due {
		if t.done {
			continue
		}
		t.done = true
		t.fn()
	}

	for _, t := range s.active {
		if t.done {
			continue
		}
		if t.kind == taskNextFrame {
			t.done = true
			t.fn()
			continue
		}
		t.frameFn(dt)
	}

	kept := s.frames[:0]
	for _, t := range s.frames {
		if !t.done {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.frames); i++ {
		s.frames[i] = nil
	}
	s.frames = kept

	clear(s.due)
	clear(s.active)
	return dt
}

// Pending returns the number of tasks that will still fire.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	for _, t := range s.frames {
		if !t.done {
			n++
		}
	}
	return n
}

// Close cancels every task. Tasks scheduled afterwards never fire and Tick
// becomes a no-op.
func (s *Scheduler) Close() {
	for _, t := range s.timers {
		t.done = true
	}
	for _, t := range s.frames {
		t.done = true
	}
	// Close may run from a callback mid-Tick.
	for _, t := range s.due {
		t.done = true
	}
	for _, t := range s.active {
		t.done = true
	}
	s.timers = nil
	s.frames = nil
	s.closed = true
}
