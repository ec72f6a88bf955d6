package ecs

import (
	nature "github.com/oidoid/nature-elsewhere-sub000"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// WorldEventType is the Donburi event type for world events.
var WorldEventType = events.NewEventType[nature.Event]()

type donburiSink struct {
	world donburi.World
	only  map[nature.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. When types
// are given, only events of those types are published.
func NewDonburiSink(world donburi.World, types ...nature.EventType) nature.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.only = make(map[nature.EventType]bool, len(types))
		for _, t := range types {
			s.only[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event nature.Event) {
	if s.only != nil && !s.only[event.Type] {
		return
	}
	WorldEventType.Publish(s.world, event)
}
