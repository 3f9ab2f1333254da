package ecs

import (
	"github.com/livetwice/sections"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SectionChangeEventType is the Donburi event type for section changes.
var SectionChangeEventType = events.NewEventType[sections.SectionChange]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Changes are
// published to SectionChangeEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) sections.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitSectionChange(ev sections.SectionChange) {
	SectionChangeEventType.Publish(s.world, ev)
}
