package artstamps

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareLevel returns a level with one 40x40 stamp covering (10,10)-(50,50).
func squareLevel() *Level {
	lvl := NewLevel(100, 100)
	s := NewRectShape(HrefAndClipMask{URL: "square.bmp"}, 40, 40)
	s.Transform.TX, s.Transform.TY = 10, 10
	lvl.Add(s)
	return lvl
}

func TestIntersectTopEdge(t *testing.T) {
	lvl := squareLevel()
	c, ok, err := lvl.Intersect(Vec2{30, 5}, Vec2{30, 15}, NewGeometryCache())
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0, c.X, epsilon)
	assert.InDelta(t, -5, c.Y, epsilon)
}

func TestIntersectLeftEdge(t *testing.T) {
	lvl := squareLevel()
	c, ok, err := lvl.Intersect(Vec2{0, 30}, Vec2{12, 30}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -2, c.X, epsilon)
	assert.InDelta(t, 0, c.Y, epsilon)
}

func TestIntersectFromInside(t *testing.T) {
	// Probe leaving the square through its right edge is pushed back in,
	// toward the probe's start.
	lvl := squareLevel()
	c, ok, err := lvl.Intersect(Vec2{45, 30}, Vec2{53, 30}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -3, c.X, epsilon)
	assert.InDelta(t, 0, c.Y, epsilon)
}

func TestIntersectNoCollision(t *testing.T) {
	lvl := squareLevel()
	for _, probe := range [][2]Vec2{
		{{0, 0}, {5, 5}},
		{{60, 0}, {60, 100}},
		{{20, 20}, {30, 30}}, // entirely inside
	} {
		c, ok, err := lvl.Intersect(probe[0], probe[1], nil)
		require.NoError(t, err)
		assert.False(t, ok, "probe %v", probe)
		assert.Equal(t, Vec2{}, c)
	}
}

func TestIntersectEmptyLevel(t *testing.T) {
	_, ok, err := NewLevel(10, 10).Intersect(Vec2{0, 0}, Vec2{5, 5}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIntersectNearestEdge(t *testing.T) {
	// The probe crosses both the top and bottom edges; the top one is
	// nearer its start.
	lvl := squareLevel()
	c, ok, err := lvl.Intersect(Vec2{30, 5}, Vec2{30, 60}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0, c.X, epsilon)
	assert.InDelta(t, -50, c.Y, epsilon)
}

func TestIntersectFirstShapeWins(t *testing.T) {
	near := NewRectShape(HrefAndClipMask{URL: "near.bmp"}, 40, 40)
	near.Transform.TX, near.Transform.TY = 10, 10
	far := NewRectShape(HrefAndClipMask{URL: "far.bmp"}, 40, 40)
	far.Transform.TX, far.Transform.TY = 10, 12

	a, b := Vec2{30, 5}, Vec2{30, 15}

	lvl := NewLevel(100, 100)
	lvl.Add(near)
	lvl.Add(far)
	c, ok, err := lvl.Intersect(a, b, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -5, c.Y, epsilon)

	lvl = NewLevel(100, 100)
	lvl.Add(far)
	lvl.Add(near)
	c, ok, err = lvl.Intersect(a, b, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -3, c.Y, epsilon)
}

func TestIntersectRestingContactDoesNotHidePenetration(t *testing.T) {
	lvl := squareLevel()
	lvl.Add(Shape{
		ID:        "ledge",
		Outline:   []Vec2{{0, 0}, {40, 0}},
		Transform: Transform{Scale: 1, TX: 10, TY: 5},
	})

	// b sits exactly on the square's top edge and crosses the ledge.
	c, ok, err := lvl.Intersect(Vec2{30, 0}, Vec2{30, 10}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0, c.X, epsilon)
	assert.InDelta(t, -5, c.Y, epsilon)

	// With only the resting contact, the zero correction is still a hit.
	c, ok, err = squareLevel().Intersect(Vec2{30, 0}, Vec2{30, 10}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, c.Significant())
}

func TestIntersectRotatedShape(t *testing.T) {
	// A 40x40 square turned 45 degrees about (30,30) is a diamond whose
	// upper-left edge lies on x+y = 60 - 20*sqrt(2).
	lvl := squareLevel()
	lvl.Shapes[0].Transform.Rotate = 45
	edge := 60 - 20*math.Sqrt2

	b := Vec2{20, 20}
	c, ok, err := lvl.Intersect(Vec2{20, 0}, b, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, c.X, c.Y, 1e-9, "correction follows the edge normal")
	assert.Less(t, c.X, 0.0)
	moved := b.Add(c)
	assert.InDelta(t, edge, moved.X+moved.Y, 1e-9)
}

func TestIntersectSkipsDegenerateEdges(t *testing.T) {
	lvl := NewLevel(100, 100)
	lvl.Add(Shape{
		ID:        "dot",
		Outline:   []Vec2{{20, 12}},
		Transform: Transform{Scale: 1},
	})
	lvl.Add(Shape{
		ID:        "ledge",
		Outline:   []Vec2{{0, 10}, {0, 10}, {40, 10}},
		Transform: Transform{Scale: 1},
	})
	c, ok, err := lvl.Intersect(Vec2{20, 5}, Vec2{20, 15}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0, c.X, epsilon)
	assert.InDelta(t, -5, c.Y, epsilon)
}

func TestIntersectTwoPointOutline(t *testing.T) {
	lvl := NewLevel(100, 100)
	lvl.Add(Shape{
		ID:        "wall",
		Outline:   []Vec2{{10, 0}, {10, 40}},
		Transform: Transform{Scale: 1},
	})
	c, ok, err := lvl.Intersect(Vec2{15, 20}, Vec2{5, 20}, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 5, c.X, epsilon)
	assert.InDelta(t, 0, c.Y, epsilon)
}

func TestIntersectParallelProbe(t *testing.T) {
	lvl := NewLevel(100, 100)
	lvl.Add(Shape{
		ID:        "wall",
		Outline:   []Vec2{{10, 0}, {10, 40}},
		Transform: Transform{Scale: 1},
	})
	_, ok, err := lvl.Intersect(Vec2{10, -5}, Vec2{10, 5}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIntersectDegenerateProbe(t *testing.T) {
	lvl := squareLevel()
	_, ok, err := lvl.Intersect(Vec2{30, 30}, Vec2{30, 30}, nil)
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateProbe))

	var gerr *GeometryError
	require.True(t, errors.As(err, &gerr))
	assert.Empty(t, gerr.Shape)
}

func TestIntersectNonFiniteProbe(t *testing.T) {
	lvl := squareLevel()
	_, _, err := lvl.Intersect(Vec2{math.NaN(), 0}, Vec2{30, 30}, nil)
	assert.ErrorIs(t, err, ErrNonFinite)
	_, _, err = lvl.Intersect(Vec2{0, 0}, Vec2{math.Inf(1), 30}, nil)
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestIntersectNonFiniteShape(t *testing.T) {
	lvl := squareLevel()
	lvl.Shapes[0].Transform.Scale = math.Inf(1)
	_, ok, err := lvl.Intersect(Vec2{30, 5}, Vec2{30, 15}, nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNonFinite)

	var gerr *GeometryError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "square.bmp", gerr.Shape)
	assert.Contains(t, err.Error(), "square.bmp")
}

func TestSignificant(t *testing.T) {
	assert.False(t, Vec2{1e-7, 1e-7}.Significant())
	assert.False(t, Vec2{-Epsilon, Epsilon}.Significant())
	assert.True(t, Vec2{1e-5, 0}.Significant())
	assert.True(t, Vec2{0, -0.5}.Significant())
}
