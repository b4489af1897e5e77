package ecs

import (
	"github.com/phanxgames/stampboard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BoardEventType is the Donburi event type for stampboard board events.
var BoardEventType = events.NewEventType[stampboard.BoardEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on BoardEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) stampboard.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event stampboard.BoardEvent) {
	BoardEventType.Publish(s.world, event)
}
