package ecs

import (
	"math"
	"testing"
	"time"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/artstamps"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitCollision(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []artstamps.CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e artstamps.CollisionEvent) {
		received = append(received, e)
	})

	store.EmitCollision(artstamps.CollisionEvent{Entity: "a", Frame: 3, Delta: artstamps.Vec2{X: -1}})
	store.EmitCollision(artstamps.CollisionEvent{Entity: "b", Frame: 3, Delta: artstamps.Vec2{Y: 2}})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	CollisionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Entity != "a" || received[0].Delta.X != -1 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Entity != "b" || received[1].Delta.Y != 2 {
		t.Errorf("event 1: %+v", received[1])
	}
}

// wallSession returns a session with a 20x40 wall at x=30..50 and a 10x10
// hero centred at (24.5, 20), one step away from touching it.
func wallSession() (*artstamps.Session, *artstamps.Entity) {
	lvl := artstamps.NewLevel(100, 100)
	wall := artstamps.NewRectShape(artstamps.HrefAndClipMask{URL: "wall.bmp"}, 20, 40)
	wall.Transform.TX = 30
	lvl.Add(wall)

	s := artstamps.NewSession(lvl, artstamps.Rect{Width: 100, Height: 100})
	hero := artstamps.NewEntity("hero", 10, 10)
	hero.SetPosition(artstamps.Vec2{X: 24.5, Y: 20})
	s.AddEntity(hero)
	return s, hero
}

func TestDonburiStore_SessionCollision(t *testing.T) {
	world := donburi.NewWorld()
	s, hero := wallSession()
	s.SetEventSink(NewDonburiStore(world))

	var received []artstamps.CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e artstamps.CollisionEvent) {
		received = append(received, e)
	})

	var in artstamps.InputState
	in.Press(artstamps.KeyRight)
	if _, err := s.Update(&in, 16*time.Millisecond); err != nil {
		t.Fatalf("Update: %v", err)
	}
	CollisionEventType.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 collision, got %d: %+v", len(received), received)
	}
	ev := received[0]
	if ev.SessionID != s.ID() || ev.Entity != "hero" || ev.Frame != 1 {
		t.Errorf("event identity: %+v", ev)
	}
	if math.Abs(ev.Delta.X+0.5) > 1e-9 || ev.Delta.Y != 0 {
		t.Errorf("Delta = %+v, want (-0.5, 0)", ev.Delta)
	}
	if p := hero.Position(); math.Abs(p.X-25) > 1e-9 || p.Y != 20 {
		t.Errorf("hero at %+v, want (25, 20)", p)
	}
}

func TestTrackAndSync(t *testing.T) {
	world := donburi.NewWorld()
	s, hero := wallSession()
	id := Track(world, hero)

	entry := world.Entry(id)
	if got := EntityComponent.Get(entry).Position; got.X != 24.5 || got.Y != 20 {
		t.Fatalf("tracked position = %+v", got)
	}

	var in artstamps.InputState
	in.Press(artstamps.KeyDown)
	if _, err := s.Update(&in, 16*time.Millisecond); err != nil {
		t.Fatalf("Update: %v", err)
	}
	SyncTransforms(world)

	data := EntityComponent.Get(entry)
	if data.Position != hero.Position() {
		t.Errorf("synced position = %+v, want %+v", data.Position, hero.Position())
	}
	if data.Transform != hero.Transform {
		t.Errorf("synced transform = %+v, want %+v", data.Transform, hero.Transform)
	}
}
