// Package ecs provides ECS adapters for section navigation.
//
// The primary adapter is [NewDonburiSink], which forwards every
// [sections.SectionChange] into a [Donburi] world as a typed event.
// Subscribe to [SectionChangeEventType] in your ECS systems to receive them.
//
// Usage:
//
//	ctrl, err := sections.New(cfg, sections.WithEventSink(ecs.NewDonburiSink(world)))
//
// Events are queued; call SectionChangeEventType.ProcessEvents(world) once per
// frame.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
