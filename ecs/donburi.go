package ecs

import (
	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for trellis interaction
// events. Subscribe to it to receive pointer, key, and focus events.
var InteractionEventType = events.NewEventType[trellis.InteractionEvent]()

type donburiStore struct {
	world donburi.World
	types trellis.EventCategory
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are published to InteractionEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) trellis.EventStore {
	return &donburiStore{world: world, types: trellis.CategoryAll}
}

// NewFilteredDonburiStore is like NewDonburiStore but only publishes events
// whose category is in cats.
func NewFilteredDonburiStore(world donburi.World, cats trellis.EventCategory) trellis.EventStore {
	return &donburiStore{world: world, types: cats}
}

func (s *donburiStore) EmitEvent(event trellis.InteractionEvent) {
	if s.types&event.Type.Category() == 0 {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
