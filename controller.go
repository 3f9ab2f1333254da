package sections

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

// Controller owns the current section index and the transition lock, and is
// the only writer of either. Surfaces read the index and submit requests,
// intents and scroll samples through its methods.
//
// A Controller is not safe for concurrent use; call it from the goroutine
// that runs the frame loop.
type Controller struct {
	id     string
	cfg    Config
	clock  Clock
	sched  *Scheduler
	view   *Viewport
	input  *Normalizer
	log    *slog.Logger
	sink   EventSink
	extent float64

	current  int
	lock     TransitionLock
	handlers changeRegistry

	pendingOffset float64
	sampleTask    *Task // at most one scroll sample per frame
	snapTask      *Task // debounced reconciler

	injectQueue []syntheticInput
	testRunner  *TestRunner

	lastUpdate time.Time
	updated    bool
	closed     bool
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithClock sets the time source. Defaults to SystemClock.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithEventSink forwards every section change to sink.
func WithEventSink(sink EventSink) Option {
	return func(c *Controller) { c.sink = sink }
}

// WithExtent sets the initial viewport size along the paging axis. Until a
// surface reports its size the controller works in units of one section.
func WithExtent(extent float64) Option {
	return func(c *Controller) { c.extent = extent }
}

// New validates cfg and returns a controller at section 0.
func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	cfg.SectionLabels = append([]string(nil), cfg.SectionLabels...)

	c := &Controller{
		id:     uuid.NewString(),
		cfg:    cfg,
		clock:  SystemClock{},
		log:    slog.Default(),
		extent: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.extent <= 0 {
		return nil, fmt.Errorf("new controller: %w: extent must be positive", ErrInvalidConfig)
	}
	c.log = c.log.With("component", "sections", "controller", c.id)
	c.sched = NewScheduler(c.clock)
	c.view = newViewport(cfg.PagingAxis, c.extent, cfg.TotalSections)
	c.input = NewNormalizer(cfg)
	return c, nil
}

// ID returns the controller's instance id, as used in its log lines.
func (c *Controller) ID() string { return c.id }

// Config returns a copy of the controller's configuration.
func (c *Controller) Config() Config {
	cfg := c.cfg
	cfg.SectionLabels = append([]string(nil), c.cfg.SectionLabels...)
	return cfg
}

// Scheduler returns the scheduler advanced by Update. Pointer trackers and
// glows attach their tasks here so Close tears them down too.
func (c *Controller) Scheduler() *Scheduler { return c.sched }

// Current returns the current section index.
func (c *Controller) Current() int { return c.current }

// Total returns the number of sections.
func (c *Controller) Total() int { return c.cfg.TotalSections }

// Label returns the current section's label.
func (c *Controller) Label() string { return c.cfg.Label(c.current) }

// Labels returns every section label.
func (c *Controller) Labels() []string {
	labels := make([]string, c.cfg.TotalSections)
	for i := range labels {
		labels[i] = c.cfg.Label(i)
	}
	return labels
}

// Offset returns the viewport scroll offset along the paging axis.
func (c *Controller) Offset() float64 { return c.view.Offset() }

// Viewport returns the scroll container. Surfaces read it to lay sections
// out; moving it directly bypasses the lock, so use ScrollBy instead.
func (c *Controller) Viewport() *Viewport { return c.view }

// State reports whether a transition holds the lock.
func (c *Controller) State() State {
	if c.lock.Held() {
		return StateLocked
	}
	return StateIdle
}

// RequestSection asks for index to become the current section. It is
// rejected, silently, when index is out of range, when it is more than one
// away from the current section and allowDistantJump is false, or while a
// transition holds the lock. On acceptance the lock is taken, an animated
// scroll starts and the index is updated immediately. The result reports
// acceptance.
func (c *Controller) RequestSection(index int, allowDistantJump bool) bool {
	return c.request(index, allowDistantJump, CauseRequest)
}

func (c *Controller) request(index int, allowDistantJump bool, cause Cause) bool {
	if c.closed {
		return false
	}
	if index < 0 || index >= c.cfg.TotalSections {
		c.debug("request rejected", "reason", "out of range", "index", index)
		return false
	}
	if !allowDistantJump && absInt(index-c.current) > 1 {
		c.debug("request rejected", "reason", "distant jump", "index", index, "current", c.current)
		return false
	}
	if c.lock.Held() {
		c.debug("request rejected", "reason", "locked", "index", index)
		return false
	}

	c.startTransition(c.view.Origin(index))
	c.setCurrent(index, cause)
	c.debug("transition started", "index", index, "cause", cause.String())
	return true
}

// startTransition takes the lock and animates the viewport to offset.
func (c *Controller) startTransition(offset float64) {
	c.lock.acquire(c.sched, c.cfg.TransitionDuration, c.settled)
	c.view.ScrollTo(offset, c.cfg.TransitionDuration, scrollEase)
}

// settled runs when the lock's timer expires.
func (c *Controller) settled() {
	c.debug("transition settled", "index", c.current, "offset", c.view.Offset())
	// Samples taken while locked were skipped, so the index may lag a native
	// scroll that interrupted the animation. Resample now, then re-check
	// alignment against the fresh index.
	c.sampleTask.Cancel()
	c.pendingOffset = c.view.Offset()
	c.sampleScroll()
	if !c.aligned() && !c.snapTask.Pending() {
		c.armSnap()
	}
}

// Apply turns an intent into an adjacent-section request. Intents are
// dropped while the lock is held and during the cooldown after the last
// transition started.
func (c *Controller) Apply(in Intent) bool {
	if c.closed || in == IntentNone {
		return false
	}
	if c.lock.Held() || c.lock.InCooldown(c.clock.Now(), c.cfg.Cooldown) {
		c.debug("intent dropped", "intent", in.String(), "locked", c.lock.Held())
		return false
	}
	target := c.current + int(in)
	if target < 0 || target >= c.cfg.TotalSections {
		return false
	}
	return c.request(target, false, CauseIntent)
}

// Next applies an advance intent.
func (c *Controller) Next() bool { return c.Apply(IntentAdvance) }

// Prev applies a retreat intent.
func (c *Controller) Prev() bool { return c.Apply(IntentRetreat) }

// Resize sets the viewport extent, keeping the current section aligned.
func (c *Controller) Resize(extent float64) {
	if c.closed || extent <= 0 || extent == c.view.Extent {
		return
	}
	c.view.Extent = extent
	c.view.SetOffset(c.view.Origin(c.current))
}

// Update advances one frame: synthetic input, the scroll animation, then
// due timers and frame tasks. Call it once per tick.
func (c *Controller) Update() {
	if c.closed {
		return
	}
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjectedInput()

	now := c.clock.Now()
	var dt time.Duration
	if c.updated {
		dt = now.Sub(c.lastUpdate)
	}
	c.lastUpdate, c.updated = now, true

	// Motion first, so a transition's final frame lands before its lock
	// release fires in the same tick.
	if c.view.update(dt) {
		c.noteScroll(c.view.Offset())
	}
	c.sched.Tick()
}

// Close tears the controller down: every timer and frame task is cancelled
// and all later calls are no-ops.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.lock.reset()
	c.sched.Close()
	c.sampleTask = nil
	c.snapTask = nil
	c.handlers = changeRegistry{}
	c.injectQueue = nil
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) setCurrent(index int, cause Cause) {
	if index == c.current {
		return
	}
	ev := SectionChange{
		From:  c.current,
		To:    index,
		Label: c.cfg.Label(index),
		Cause: cause,
		At:    c.clock.Now(),
	}
	c.current = index
	c.handlers.fire(ev)
	if c.sink != nil {
		c.sink.EmitSectionChange(ev)
	}
}

func (c *Controller) aligned() bool {
	diff := math.Abs(c.view.Offset() - c.view.Origin(c.view.NearestSection()))
	return diff <= c.cfg.SnapTolerance*c.view.Extent
}

func (c *Controller) debug(msg string, args ...any) {
	if c.cfg.Debug {
		c.log.Debug(msg, args...)
	}
}
