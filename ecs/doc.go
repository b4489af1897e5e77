// Package ecs provides ECS adapters for stampboard's board events.
//
// The primary adapter is [NewDonburiSink], which publishes board events
// (stamp loaded, pressed, moved, modal opened and closed) into a [Donburi]
// world as typed events. Subscribe to [BoardEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	board.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
