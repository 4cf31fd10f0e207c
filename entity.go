package artstamps

// Bindings maps held keys to unit movement directions.
type Bindings map[Key]Vec2

// DefaultBindings binds the arrow keys.
func DefaultBindings() Bindings {
	return Bindings{
		KeyLeft:  {-1, 0},
		KeyRight: {1, 0},
		KeyUp:    {0, -1},
		KeyDown:  {0, 1},
	}
}

// probeInset keeps corner probes off the exact corners so that an entity
// sliding along a wall does not catch on the wall's end.
const probeInset = 1.0

// Entity is a keyboard-driven object that moves through the level and is
// pushed out of stamp geometry.
type Entity struct {
	Name      string
	Transform Transform
	// Width and Height are the nominal (unscaled) size; the pivot sits at
	// the centre.
	Width, Height float64
	// Speed is the distance moved per applied step before the repeat
	// multiplier.
	Speed    float64
	Bindings Bindings
	// Solid disables collision resolution when false.
	Solid bool
}

// NewEntity creates a solid entity of the given nominal size bound to the
// arrow keys.
func NewEntity(name string, width, height float64) *Entity {
	return &Entity{
		Name:      name,
		Transform: NewTransform(width, height),
		Width:     width,
		Height:    height,
		Speed:     1,
		Bindings:  DefaultBindings(),
		Solid:     true,
	}
}

// Position returns the entity's world-space centre.
func (e *Entity) Position() Vec2 {
	return e.Transform.Forward(Vec2{e.Transform.MidX, e.Transform.MidY})
}

// SetPosition moves the entity so its centre lands on p.
func (e *Entity) SetPosition(p Vec2) {
	c := e.Position()
	e.Transform.TX += p.X - c.X
	e.Transform.TY += p.Y - c.Y
}

// HalfExtents returns half the entity's scaled size.
func (e *Entity) HalfExtents() Vec2 {
	return Vec2{e.Width / 2, e.Height / 2}.Scale(e.Transform.Scale)
}

// Correction is one displacement applied to an entity during a step.
type Correction struct {
	Probe [2]Vec2
	Delta Vec2
}

// StepResult describes what happened to an entity during one step.
type StepResult struct {
	Moved Vec2
	// Corrections lists the significant corrections applied, in order.
	Corrections []Correction
}

// Collided reports whether any significant correction was applied.
func (r StepResult) Collided() bool {
	return len(r.Corrections) > 0
}

// Direction sums the directions bound to the held keys.
func (e *Entity) Direction(in *InputState) Vec2 {
	var dir Vec2
	for k, d := range e.Bindings {
		if in.IsDown(k) {
			dir = dir.Add(d)
		}
	}
	return dir
}

// Step moves the entity along the held keys' directions by Speed*mult and
// resolves collisions against the level, one axis at a time. Every
// correction the engine returns is applied to the translation, including
// sub-Epsilon ones; only significant ones are reported. A geometry error
// aborts the step, leaves the entity where it started and is returned as is.
func (e *Entity) Step(in *InputState, mult float64, lvl *Level, cache *GeometryCache) (StepResult, error) {
	var res StepResult
	dir := e.Direction(in)
	if dir.X == 0 && dir.Y == 0 {
		return res, nil
	}
	move := dir.Scale(e.Speed * mult)
	tx, ty := e.Transform.TX, e.Transform.TY

	if move.X != 0 {
		e.Transform.TX += move.X
		res.Moved.X = move.X
		if err := e.resolveAxis(Vec2{sign(move.X), 0}, lvl, cache, &res); err != nil {
			e.Transform.TX, e.Transform.TY = tx, ty
			return StepResult{}, err
		}
	}
	if move.Y != 0 {
		e.Transform.TY += move.Y
		res.Moved.Y = move.Y
		if err := e.resolveAxis(Vec2{0, sign(move.Y)}, lvl, cache, &res); err != nil {
			e.Transform.TX, e.Transform.TY = tx, ty
			return StepResult{}, err
		}
	}
	return res, nil
}

// resolveAxis casts probes from the entity's centre line to its leading
// edge in direction dir: one through the centre and one near each corner.
func (e *Entity) resolveAxis(dir Vec2, lvl *Level, cache *GeometryCache, res *StepResult) error {
	if !e.Solid || lvl == nil {
		return nil
	}
	half := e.HalfExtents()
	// perp runs along the leading edge.
	perp := Vec2{dir.Y, dir.X}
	reach := half.X
	span := half.Y
	if dir.X == 0 {
		reach, span = half.Y, half.X
	}
	offsets := []float64{0, -(span - probeInset), span - probeInset}
	if span <= probeInset {
		offsets = offsets[:1]
	}

	for _, off := range offsets {
		c := e.Position()
		a := c.Add(perp.Scale(off))
		b := a.Add(dir.Scale(reach))
		delta, hit, err := lvl.Intersect(a, b, cache)
		if err != nil {
			return err
		}
		if !hit {
			continue
		}
		e.Transform.TX += delta.X
		e.Transform.TY += delta.Y
		if delta.Significant() {
			res.Corrections = append(res.Corrections, Correction{Probe: [2]Vec2{a, b}, Delta: delta})
		}
	}
	return nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
