package artstamps

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventSink receives collision events. When set on a Session, every
// significant correction is forwarded to it.
type EventSink interface {
	EmitCollision(event CollisionEvent)
}

// CollisionEvent describes one significant correction applied to an entity.
type CollisionEvent struct {
	SessionID string
	Frame     uint64
	Entity    string
	Probe     [2]Vec2
	Delta     Vec2
	// Position is the entity's centre after the correction.
	Position Vec2
}

// Session is the top-level object that owns the level, the geometry cache,
// the entities and the camera for one play session. It is driven once per
// frame by a host through Update and is not safe for concurrent use.
type Session struct {
	id       string
	level    *Level
	cache    *GeometryCache
	camera   *Camera
	entities []*Entity
	cursor   *Cursor
	repeater *Repeater

	store  EventSink
	log    *zap.Logger
	debug  bool
	strict bool

	script       *ScriptRunner
	screenshotFn func(label string)
	onClick      func(x, y int)

	frame   uint64
	last    FrameStats
	aborted int
}

// NewSession creates a session over the given level with a camera covering
// viewport.
func NewSession(level *Level, viewport Rect) *Session {
	if level == nil {
		level = NewLevel(viewport.Width, viewport.Height)
	}
	s := &Session{
		id:       uuid.NewString(),
		cache:    NewGeometryCache(),
		camera:   NewCamera(viewport),
		repeater: NewRepeater(),
		log:      zap.NewNop(),
	}
	s.SetLevel(level)
	return s
}

// ID returns the session's unique identifier, attached to every log line
// and collision event.
func (s *Session) ID() string { return s.id }

// Level returns the session's level.
func (s *Session) Level() *Level { return s.level }

// SetLevel replaces the level and drops cached geometry for shapes that are
// not part of it.
func (s *Session) SetLevel(level *Level) {
	s.level = level
	s.cache.Prune(level)
	if s.debug {
		debugCheckShapeCount(s.log, level)
	}
}

// Cache returns the session's geometry cache.
func (s *Session) Cache() *GeometryCache { return s.cache }

// Camera returns the session's camera.
func (s *Session) Camera() *Camera { return s.camera }

// Repeater returns the key-repeat pacing used for movement.
func (s *Session) Repeater() *Repeater { return s.repeater }

// AddEntity adds an entity. Entities are stepped in the order added.
func (s *Session) AddEntity(e *Entity) {
	s.entities = append(s.entities, e)
}

// Entities returns the session's entities.
func (s *Session) Entities() []*Entity { return s.entities }

// SetCursor attaches a keyboard cursor driven alongside the entities.
func (s *Session) SetCursor(c *Cursor) { s.cursor = c }

// Cursor returns the attached cursor, or nil.
func (s *Session) Cursor() *Cursor { return s.cursor }

// SetClickFunc registers a callback for cursor clicks.
func (s *Session) SetClickFunc(fn func(x, y int)) { s.onClick = fn }

// SetEventSink sets the sink that receives collision events.
func (s *Session) SetEventSink(store EventSink) { s.store = store }

// SetLogger replaces the session's logger. A nil logger disables logging.
func (s *Session) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	s.log = log.With(zap.String("session", s.id))
}

// SetDebugMode enables per-frame stats logging at debug level.
func (s *Session) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		debugCheckShapeCount(s.log, s.level)
	}
}

// SetStrictGeometry makes Update return geometry errors instead of logging
// them and skipping the rest of the frame.
func (s *Session) SetStrictGeometry(strict bool) { s.strict = strict }

// SetScreenshotFunc registers the host hook used by script screenshot steps.
func (s *Session) SetScreenshotFunc(fn func(label string)) { s.screenshotFn = fn }

// Frame returns the number of frames updated so far.
func (s *Session) Frame() uint64 { return s.frame }

// LastFrame returns the stats of the most recent Update.
func (s *Session) LastFrame() FrameStats { return s.last }

// AbortedFrames returns how many frames were cut short by geometry errors.
func (s *Session) AbortedFrames() int { return s.aborted }

// Update advances the session by one frame of dt. It consumes one injected
// input event, advances the input script, moves entities for held keys as
// paced by the repeater or on a fresh key press and resolves their
// collisions, then updates the camera. quit is true once the player or host asked to stop; the host
// decides how to shut down.
func (s *Session) Update(in *InputState, dt time.Duration) (quit bool, err error) {
	s.frame++
	in.processInjected()
	if s.script != nil {
		s.script.step(s, in)
	}
	defer in.EndFrame()

	if in.QuitRequested() {
		s.log.Info("quit requested", zap.Uint64("frame", s.frame))
		return true, nil
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	before := s.cache.Stats()
	stats := FrameStats{Frame: s.frame}

	// A fresh press applies at once, even mid-wait for a held key.
	ticked := s.repeater.Tick(in.AnyDown(), dt)
	fresh := in.Pressed() != KeyUnknown && !in.Repeat()
	if ticked || fresh {
		mult := s.repeater.Multiplier()
		if s.cursor != nil && s.cursor.Apply(in, mult) && s.onClick != nil {
			s.onClick(s.cursor.Position())
		}
		if err := s.stepEntities(in, mult, &stats); err != nil {
			stats.Aborted = true
			s.aborted++
			if s.strict {
				s.finishFrame(stats, before, t0)
				return false, err
			}
			s.log.Error("collision check failed, skipping frame",
				zap.Uint64("frame", s.frame), zap.Error(err))
		}
	}

	s.camera.Update(float32(dt.Seconds()))
	s.finishFrame(stats, before, t0)
	return false, nil
}

func (s *Session) stepEntities(in *InputState, mult float64, stats *FrameStats) error {
	for _, e := range s.entities {
		res, err := e.Step(in, mult, s.level, s.cache)
		if res.Moved.X != 0 || res.Moved.Y != 0 {
			stats.Moved++
		}
		for _, c := range res.Corrections {
			stats.Corrections++
			s.log.Debug("collision",
				zap.String("entity", e.Name),
				zap.Float64("dx", c.Delta.X),
				zap.Float64("dy", c.Delta.Y))
			if s.store != nil {
				s.store.EmitCollision(CollisionEvent{
					SessionID: s.id,
					Frame:     s.frame,
					Entity:    e.Name,
					Probe:     c.Probe,
					Delta:     c.Delta,
					Position:  e.Position(),
				})
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) finishFrame(stats FrameStats, before CacheStats, t0 time.Time) {
	after := s.cache.Stats()
	stats.CacheHits = after.Hits - before.Hits
	stats.CacheMisses = after.Misses - before.Misses + after.Recomputes - before.Recomputes
	if s.debug {
		stats.Duration = time.Since(t0)
		s.debugLog(stats)
	}
	s.last = stats
}
