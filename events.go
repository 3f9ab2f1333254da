package sections

import "time"

// SectionChange describes one write to the current section index.
type SectionChange struct {
	From  int
	To    int
	Label string
	Cause Cause
	At    time.Time
}

// EventSink is the optional bridge for forwarding section changes to
// another system (see the ecs package for a Donburi adapter).
type EventSink interface {
	EmitSectionChange(SectionChange)
}

type changeHandler struct {
	id uint32
	fn func(SectionChange)
}

type changeRegistry struct {
	handlers []changeHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *changeRegistry
}

// Remove unregisters the callback so it no longer fires. Safe to call more
// than once, and from inside the callback itself.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			// Copy rather than shift in place so a dispatch loop iterating
			// the old slice is unaffected.
			next := make([]changeHandler, 0, len(s)-1)
			next = append(next, s[:i]...)
			h.reg.handlers = append(next, s[i+1:]...)
			return
		}
	}
}

func (r *changeRegistry) add(fn func(SectionChange)) CallbackHandle {
	r.nextID++
	r.handlers = append(r.handlers, changeHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r}
}

func (r *changeRegistry) fire(ev SectionChange) {
	for _, h := range r.handlers {
		h.fn(ev)
	}
}

// OnSectionChange registers fn to run synchronously after every change of
// the current section index.
func (c *Controller) OnSectionChange(fn func(SectionChange)) CallbackHandle {
	return c.handlers.add(fn)
}
