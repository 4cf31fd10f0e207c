package ecs

import (
	"github.com/phanxgames/artstamps"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// CollisionEventType is the Donburi event type for artstamps collision events.
var CollisionEventType = events.NewEventType[artstamps.CollisionEvent]()

// EntityData mirrors one session entity.
type EntityData struct {
	Entity    *artstamps.Entity
	Transform artstamps.Transform
	Position  artstamps.Vec2
}

// EntityComponent holds the mirrored state of a tracked entity.
var EntityComponent = donburi.NewComponentType[EntityData]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Collision events are published to CollisionEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) artstamps.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitCollision(event artstamps.CollisionEvent) {
	CollisionEventType.Publish(s.world, event)
}

// Track creates a Donburi entity mirroring e.
func Track(world donburi.World, e *artstamps.Entity) donburi.Entity {
	id := world.Create(EntityComponent)
	EntityComponent.SetValue(world.Entry(id), EntityData{
		Entity:    e,
		Transform: e.Transform,
		Position:  e.Position(),
	})
	return id
}

// SyncTransforms copies every tracked entity's current placement into its
// component. Call it after Session.Update.
func SyncTransforms(world donburi.World) {
	donburi.NewQuery(filter.Contains(EntityComponent)).Each(world, func(entry *donburi.Entry) {
		data := EntityComponent.Get(entry)
		if data.Entity == nil {
			return
		}
		data.Transform = data.Entity.Transform
		data.Position = data.Entity.Position()
	})
}
