package artstamps

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Transform places an object in world space: scale, then rotate about the
// pivot (MidX, MidY), then translate by (TX, TY). Rotate is in degrees and is
// clockwise on screen. Scale must be positive for the geometry to be
// meaningful; this is not enforced.
type Transform struct {
	Scale      float64
	MidX, MidY float64
	Rotate     float64
	TX, TY     float64
}

// NewTransform returns the identity placement for an object of the given
// nominal size. The pivot is fixed at the object's centre.
func NewTransform(width, height float64) Transform {
	return Transform{Scale: 1, MidX: width / 2, MidY: height / 2}
}

// Forward maps a local-space point to world space.
func (t Transform) Forward(p Vec2) Vec2 {
	cx, cy := p.X-t.MidX, p.Y-t.MidY
	sin, cos := math.Sincos(-t.Rotate * math.Pi / 180)
	rx := cx*cos + cy*sin
	ry := -cx*sin + cy*cos
	return Vec2{rx*t.Scale + t.MidX + t.TX, ry*t.Scale + t.MidY + t.TY}
}

// Inverse maps a world-space point back to local space. It is the exact
// inverse of Forward for any non-zero Scale.
func (t Transform) Inverse(p Vec2) Vec2 {
	cx := (p.X - t.TX - t.MidX) / t.Scale
	cy := (p.Y - t.TY - t.MidY) / t.Scale
	sin, cos := math.Sincos(t.Rotate * math.Pi / 180)
	return Vec2{cx*cos + cy*sin + t.MidX, -cx*sin + cy*cos + t.MidY}
}

// BBox returns the forward-mapped corners of the local rectangle
// [0, 2*MidX] x [0, 2*MidY] in the order top-left, bottom-left,
// bottom-right, top-right.
func (t Transform) BBox() [4]Vec2 {
	w, h := t.MidX*2, t.MidY*2
	return [4]Vec2{
		t.Forward(Vec2{0, 0}),
		t.Forward(Vec2{0, h}),
		t.Forward(Vec2{w, h}),
		t.Forward(Vec2{w, 0}),
	}
}

// AABB returns the axis-aligned rectangle enclosing BBox.
func (t Transform) AABB() Rect {
	box := t.BBox()
	return boundsOf(box[:])
}

// Compose returns the single transform equivalent to applying local first
// and parent second. The result keeps local's pivot so renderers centre the
// child correctly.
func Compose(parent, local Transform) Transform {
	pivot := Vec2{local.MidX, local.MidY}
	moved := parent.Forward(Vec2{local.MidX + local.TX, local.MidY + local.TY})
	return Transform{
		Scale:  parent.Scale * local.Scale,
		MidX:   local.MidX,
		MidY:   local.MidY,
		Rotate: parent.Rotate + local.Rotate,
		TX:     moved.X - pivot.X,
		TY:     moved.Y - pivot.Y,
	}
}

// IsIdentity reports whether t maps every point to itself.
func (t Transform) IsIdentity() bool {
	return t.Scale == 1 && math.Mod(t.Rotate, 360) == 0 && t.TX == 0 && t.TY == 0
}

// ApproxEqual reports whether every field of t and o differs by at most eps.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return math.Abs(t.Scale-o.Scale) <= eps &&
		math.Abs(t.MidX-o.MidX) <= eps &&
		math.Abs(t.MidY-o.MidY) <= eps &&
		math.Abs(t.Rotate-o.Rotate) <= eps &&
		math.Abs(t.TX-o.TX) <= eps &&
		math.Abs(t.TY-o.TY) <= eps
}

// Fingerprint hashes the transform's fields. Two transforms with equal
// fingerprints place geometry identically.
func (t Transform) Fingerprint() uint64 {
	var buf [48]byte
	for i, v := range [6]float64{t.Scale, t.MidX, t.MidY, t.Rotate, t.TX, t.TY} {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return xxhash.Sum64(buf[:])
}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] equivalent to
// Forward.
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t Transform) Matrix() [6]float64 {
	sin, cos := math.Sincos(t.Rotate * math.Pi / 180)
	a := t.Scale * cos
	b := t.Scale * sin
	c := -t.Scale * sin
	d := t.Scale * cos
	return [6]float64{
		a, b, c, d,
		t.MidX - (a*t.MidX + c*t.MidY) + t.TX,
		t.MidY - (b*t.MidX + d*t.MidY) + t.TY,
	}
}

// String renders t as an SVG transform attribute that places geometry the
// same way Forward does. The identity renders as "".
func (t Transform) String() string {
	var parts []string
	if t.TX != 0 || t.TY != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s, %s)", fmtFloat(t.TX), fmtFloat(t.TY)))
	}
	rotates := math.Mod(t.Rotate, 360) != 0
	if !rotates && t.Scale == 1 {
		return strings.Join(parts, " ")
	}
	pivot := t.MidX != 0 || t.MidY != 0
	if pivot {
		parts = append(parts, fmt.Sprintf("translate(%s, %s)", fmtFloat(t.MidX), fmtFloat(t.MidY)))
	}
	if rotates {
		parts = append(parts, fmt.Sprintf("rotate(%s)", fmtFloat(t.Rotate)))
	}
	if t.Scale != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s)", fmtFloat(t.Scale)))
	}
	if pivot {
		parts = append(parts, fmt.Sprintf("translate(%s, %s)", fmtFloat(-t.MidX), fmtFloat(-t.MidY)))
	}
	return strings.Join(parts, " ")
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseTransform parses an SVG transform list and decomposes it into a
// Transform whose pivot is the centre of a width x height object. Skewed or
// non-uniformly scaled transforms cannot be represented and are rejected.
func ParseTransform(attr string, width, height float64) (Transform, error) {
	m, err := parseTransformList(attr)
	if err != nil {
		return Transform{}, err
	}
	return decomposeAffine(m, width/2, height/2)
}

// decomposeAffine converts a similarity matrix into a Transform anchored at
// the given pivot.
func decomposeAffine(m [6]float64, midX, midY float64) (Transform, error) {
	scale := math.Hypot(m[0], m[1])
	if scale < 1e-12 {
		return Transform{}, fmt.Errorf("artstamps: transform collapses geometry (scale %g)", scale)
	}
	tol := 1e-9 * math.Max(1, scale)
	if math.Abs(m[0]-m[3]) > tol || math.Abs(m[1]+m[2]) > tol {
		return Transform{}, fmt.Errorf("artstamps: transform %v is not a uniform scale and rotation", m)
	}
	px, py := transformPoint(m, midX, midY)
	return Transform{
		Scale:  scale,
		MidX:   midX,
		MidY:   midY,
		Rotate: math.Atan2(m[1], m[0]) * 180 / math.Pi,
		TX:     px - midX,
		TY:     py - midY,
	}, nil
}

// parseTransformList folds "name(args) name(args) ..." into one matrix.
// Functions apply right to left, as in SVG.
func parseTransformList(s string) ([6]float64, error) {
	result := identityMatrix
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open <= 0 || closing < open {
			return identityMatrix, fmt.Errorf("artstamps: malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumbers(rest[open+1 : closing])
		if err != nil {
			return identityMatrix, fmt.Errorf("artstamps: transform %q: %w", s, err)
		}
		m, err := transformFunc(name, args)
		if err != nil {
			return identityMatrix, fmt.Errorf("artstamps: transform %q: %w", s, err)
		}
		result = multiplyAffine(result, m)
		rest = strings.TrimLeft(rest[closing+1:], " \t\r\n,")
	}
	return result, nil
}

func transformFunc(name string, args []float64) ([6]float64, error) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return identityMatrix, fmt.Errorf("matrix needs 6 arguments, got %d", len(args))
		}
		return [6]float64{args[0], args[1], args[2], args[3], args[4], args[5]}, nil
	case "translate":
		switch len(args) {
		case 1:
			return [6]float64{1, 0, 0, 1, args[0], 0}, nil
		case 2:
			return [6]float64{1, 0, 0, 1, args[0], args[1]}, nil
		}
		return identityMatrix, fmt.Errorf("translate needs 1 or 2 arguments, got %d", len(args))
	case "scale":
		switch len(args) {
		case 1:
			return [6]float64{args[0], 0, 0, args[0], 0, 0}, nil
		case 2:
			return [6]float64{args[0], 0, 0, args[1], 0, 0}, nil
		}
		return identityMatrix, fmt.Errorf("scale needs 1 or 2 arguments, got %d", len(args))
	case "rotate":
		if len(args) != 1 && len(args) != 3 {
			return identityMatrix, fmt.Errorf("rotate needs 1 or 3 arguments, got %d", len(args))
		}
		sin, cos := math.Sincos(args[0] * math.Pi / 180)
		r := [6]float64{cos, sin, -sin, cos, 0, 0}
		if len(args) == 3 {
			cx, cy := args[1], args[2]
			r = multiplyAffine([6]float64{1, 0, 0, 1, cx, cy}, multiplyAffine(r, [6]float64{1, 0, 0, 1, -cx, -cy}))
		}
		return r, nil
	case "skewX":
		if len(args) != 1 {
			return identityMatrix, fmt.Errorf("skewX needs 1 argument, got %d", len(args))
		}
		return [6]float64{1, 0, math.Tan(args[0] * math.Pi / 180), 1, 0, 0}, nil
	case "skewY":
		if len(args) != 1 {
			return identityMatrix, fmt.Errorf("skewY needs 1 argument, got %d", len(args))
		}
		return [6]float64{1, math.Tan(args[0] * math.Pi / 180), 0, 1, 0, 0}, nil
	}
	return identityMatrix, fmt.Errorf("unknown function %q", name)
}

// parseNumbers splits on commas and whitespace.
func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// --- Affine helpers ---

// identityMatrix is the identity affine matrix.
var identityMatrix = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
