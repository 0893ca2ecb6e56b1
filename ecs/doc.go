// Package ecs provides ECS adapters for trellis dispatch.
//
// The primary adapter is [NewDonburiStore], which publishes every event
// delivered to a panel with a non-zero EntityID into a [Donburi] world as a
// typed event. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	app.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
