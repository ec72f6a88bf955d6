// Package ecs bridges world events into a [Donburi] world.
//
// [NewDonburiSink] publishes every [nature.Event] raised during the update
// pass (blocked and slid moves, built-in hook transitions, terminations) as a
// typed Donburi event. Subscribe to [WorldEventType] in your ECS systems and
// drain the queue with ProcessEvents after each tick:
//
//	sink := ecs.NewDonburiSink(ecsWorld)
//	world.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
