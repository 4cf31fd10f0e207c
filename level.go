package artstamps

import "strconv"

// HrefAndClipMask identifies the artwork a stamp draws: the referenced image
// and the clip mask applied to it. It doubles as the inventory key hosts use
// to find a stamp's texture.
type HrefAndClipMask struct {
	URL  string
	Clip string
}

// String joins the href and clip mask into one identity string.
func (k HrefAndClipMask) String() string {
	if k.Clip == "" {
		return k.URL
	}
	return k.URL + "|" + k.Clip
}

// Shape is one placed stamp: a local-space outline positioned in the level
// by its Transform.
type Shape struct {
	// ID is unique within the level and keys the geometry cache.
	ID        string
	Key       HrefAndClipMask
	Outline   []Vec2
	Transform Transform
	Fill      Color
}

// RectOutline returns the outline of a width x height rectangle with its
// top-left corner at the origin, wound top-left, bottom-left, bottom-right,
// top-right like Transform.BBox.
func RectOutline(width, height float64) []Vec2 {
	return []Vec2{{0, 0}, {0, height}, {width, height}, {width, 0}}
}

// NewRectShape returns a rectangular stamp of the given nominal size with
// its pivot at the centre.
func NewRectShape(key HrefAndClipMask, width, height float64) Shape {
	return Shape{
		Key:       key,
		Outline:   RectOutline(width, height),
		Transform: NewTransform(width, height),
	}
}

// WorldOutline maps the outline into world space. It allocates; the
// intersection engine reads outlines through a GeometryCache instead.
func (s *Shape) WorldOutline() []Vec2 {
	out := make([]Vec2, len(s.Outline))
	for i, p := range s.Outline {
		out[i] = s.Transform.Forward(p)
	}
	return out
}

// Level is the ordered set of stamps making up a scene. Shapes are tested
// and drawn in slice order, which is the level file's document order.
type Level struct {
	Width, Height float64
	Shapes        []Shape

	ids map[string]bool
}

// NewLevel returns an empty level of the given size.
func NewLevel(width, height float64) *Level {
	return &Level{Width: width, Height: height}
}

// Add appends a shape and assigns its ID. An empty ID defaults to the key
// string; repeated IDs get a "#n" suffix so every shape keeps its own cache
// entry.
func (l *Level) Add(s Shape) *Shape {
	if l.ids == nil {
		l.ids = make(map[string]bool, len(l.Shapes)+1)
		for _, existing := range l.Shapes {
			l.ids[existing.ID] = true
		}
	}
	base := s.ID
	if base == "" {
		base = s.Key.String()
	}
	id := base
	for n := 1; l.ids[id]; n++ {
		id = base + "#" + strconv.Itoa(n)
	}
	l.ids[id] = true
	s.ID = id
	l.Shapes = append(l.Shapes, s)
	return &l.Shapes[len(l.Shapes)-1]
}

// Shape returns the shape with the given ID.
func (l *Level) Shape(id string) (*Shape, bool) {
	for i := range l.Shapes {
		if l.Shapes[i].ID == id {
			return &l.Shapes[i], true
		}
	}
	return nil, false
}
