// Package ecs provides ECS adapters for artstamps.
//
// [NewDonburiStore] bridges collision events from a session into a
// [Donburi] world as typed events. Subscribe to [CollisionEventType] in your
// ECS systems to receive them. [Track] and [SyncTransforms] mirror session
// entities into components so systems can query their placement.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	session.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
