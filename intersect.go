package artstamps

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateProbe reports a probe segment too short to have a
	// direction.
	ErrDegenerateProbe = errors.New("degenerate probe segment")
	// ErrNonFinite reports a NaN or infinite coordinate in a probe or in
	// transformed shape geometry.
	ErrNonFinite = errors.New("non-finite coordinate")
)

// GeometryError is returned by Intersect when the probe or the level
// geometry cannot be evaluated. It is distinct from "no collision".
type GeometryError struct {
	Op    string
	Shape string // empty when the probe itself is at fault
	Err   error
}

func (e *GeometryError) Error() string {
	if e.Shape != "" {
		return fmt.Sprintf("artstamps: %s: shape %q: %v", e.Op, e.Shape, e.Err)
	}
	return fmt.Sprintf("artstamps: %s: %v", e.Op, e.Err)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}

const (
	minProbeLength = 1e-12
	minEdgeLength  = 1e-12
)

// Intersect tests the probe segment a->b against every shape outline in
// level order. For the first shape the probe crosses it returns the
// displacement that moves b back onto the crossed edge, along the edge
// normal facing a. A shape b merely rests on does not end the scan: its zero
// correction is returned only if no later shape is penetrated. ok is false
// when nothing is crossed.
//
// Zero-length outline edges and outlines with fewer than two points are
// skipped. A degenerate probe or non-finite geometry yields a
// *GeometryError. A nil cache computes outlines without keeping them.
func (l *Level) Intersect(a, b Vec2, cache *GeometryCache) (correction Vec2, ok bool, err error) {
	if !a.finite() || !b.finite() {
		return Vec2{}, false, &GeometryError{Op: "intersect", Err: ErrNonFinite}
	}
	d := b.Sub(a)
	if d.Len() < minProbeLength {
		return Vec2{}, false, &GeometryError{Op: "intersect", Err: ErrDegenerateProbe}
	}
	if cache == nil {
		cache = NewGeometryCache()
	}

	probe := Rect{
		X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y),
		Width: math.Abs(d.X), Height: math.Abs(d.Y),
	}
	var touch Vec2
	touched := false
	for i := range l.Shapes {
		s := &l.Shapes[i]
		points, bounds, err := cache.outline(s)
		if err != nil {
			return Vec2{}, false, err
		}
		if len(points) < 2 || !bounds.Intersects(probe) {
			continue
		}
		c, hit := resolveOutline(a, b, points)
		if !hit {
			continue
		}
		if c.Significant() {
			return c, true, nil
		}
		// b rests on this shape's edge; a later shape may still be
		// penetrated.
		if !touched {
			touch, touched = c, true
		}
	}
	return touch, touched, nil
}

// resolveOutline finds the crossing nearest to a among the closed outline's
// edges and returns the correction for it.
func resolveOutline(a, b Vec2, points []Vec2) (Vec2, bool) {
	d := b.Sub(a)
	edges := len(points)
	if edges == 2 {
		edges = 1
	}

	bestT := math.Inf(1)
	var q1, q2 Vec2
	for i := 0; i < edges; i++ {
		p1, p2 := points[i], points[(i+1)%len(points)]
		t, hit := crossing(a, d, p1, p2)
		if hit && t < bestT {
			bestT, q1, q2 = t, p1, p2
		}
	}
	if math.IsInf(bestT, 1) {
		return Vec2{}, false
	}

	e := q2.Sub(q1)
	n := Vec2{-e.Y, e.X}.Scale(1 / e.Len())
	side := n.Dot(a.Sub(q1))
	if side < 0 || (side == 0 && n.Dot(d) > 0) {
		n = n.Scale(-1)
	}
	depth := n.Dot(q1.Sub(b))
	return n.Scale(depth), true
}

// crossing is the parametric segment test: a + t*d meets q1 + u*(q2-q1) with
// t and u both in [0, 1]. Parallel and zero-length edges never cross.
func crossing(a, d, q1, q2 Vec2) (float64, bool) {
	e := q2.Sub(q1)
	el := e.Len()
	if el < minEdgeLength {
		return 0, false
	}
	denom := d.Cross(e)
	if math.Abs(denom) <= 1e-12*d.Len()*el {
		return 0, false
	}
	w := q1.Sub(a)
	t := w.Cross(e) / denom
	u := w.Cross(d) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
