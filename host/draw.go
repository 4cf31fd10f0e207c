package host

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/artstamps"
)

var whitePixel *ebiten.Image

// ensureWhitePixel lazily creates the 1x1 white source image used for
// untextured polygons.
func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// geoM converts a transform into Ebitengine's matrix form.
func geoM(t artstamps.Transform) ebiten.GeoM {
	m := t.Matrix()
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// drawImage draws img stretched over a width x height object placed by t.
func drawImage(dst, img *ebiten.Image, width, height float64, t artstamps.Transform, tint *artstamps.Color) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(width/float64(b.Dx()), height/float64(b.Dy()))
	op.GeoM.Concat(geoM(t))
	if tint != nil {
		op.ColorScale.ScaleWithColor(tint.RGBA())
	}
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}

// fillPolygon draws the outline, mapped by t, as a solid convex polygon.
func fillPolygon(dst *ebiten.Image, outline []artstamps.Vec2, t artstamps.Transform, fill artstamps.Color) {
	points := make([]artstamps.Vec2, len(outline))
	for i, p := range outline {
		points[i] = t.Forward(p)
	}
	if !outlineBounds(points).Overlaps(dst.Bounds()) {
		return
	}
	verts, inds := buildPolygonFan(points, fill)
	if verts == nil {
		return
	}
	dst.DrawTriangles(verts, inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
}

// buildPolygonFan generates vertices and indices for a fan-triangulated
// polygon. N vertices, 3*(N-2) indices.
func buildPolygonFan(points []artstamps.Vec2, fill artstamps.Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	r := float32(fill.R) / 255
	g := float32(fill.G) / 255
	b := float32(fill.B) / 255
	for i, p := range points {
		v := &verts[i]
		v.DstX = float32(p.X)
		v.DstY = float32(p.Y)
		// Center of the white pixel.
		v.SrcX = 0.5
		v.SrcY = 0.5
		v.ColorR = r
		v.ColorG = g
		v.ColorB = b
		v.ColorA = 1
	}

	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}

	return verts, inds
}

// outlineBounds returns the integer rectangle enclosing the points, used
// to skip stamps entirely outside the screen.
func outlineBounds(points []artstamps.Vec2) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rect(int(points[0].X), int(points[0].Y), int(points[0].X)+1, int(points[0].Y)+1)
	for _, p := range points[1:] {
		r = r.Union(image.Rect(int(p.X), int(p.Y), int(p.X)+1, int(p.Y)+1))
	}
	return r
}
