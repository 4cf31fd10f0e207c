package artstamps

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// svgNode is a generic element; children keep document order.
type svgNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []svgNode  `xml:",any"`
}

func (n *svgNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func (n *svgNode) number(name string) (float64, error) {
	raw := strings.TrimSuffix(n.attr(name), "px")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("artstamps: <%s> attribute %s: %w", n.XMLName.Local, name, err)
	}
	return v, nil
}

// LoadSVG reads a level from the SVG subset written by WriteSVG: <use>,
// <rect> and <polygon> stamps, optionally nested in <g> groups whose
// transforms compose. Shapes keep document order.
func LoadSVG(r io.Reader) (*Level, error) {
	var root svgNode
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("artstamps: failed to parse SVG: %w", err)
	}
	if root.XMLName.Local != "svg" {
		return nil, fmt.Errorf("artstamps: root element is <%s>, want <svg>", root.XMLName.Local)
	}
	w, err := root.number("width")
	if err != nil {
		return nil, err
	}
	h, err := root.number("height")
	if err != nil {
		return nil, err
	}
	lvl := NewLevel(w, h)
	if err := loadSVGChildren(lvl, root.Children, identityMatrix); err != nil {
		return nil, err
	}
	return lvl, nil
}

func loadSVGChildren(lvl *Level, nodes []svgNode, parent [6]float64) error {
	for i := range nodes {
		n := &nodes[i]
		m, err := parseTransformList(n.attr("transform"))
		if err != nil {
			return err
		}
		m = multiplyAffine(parent, m)

		switch n.XMLName.Local {
		case "g":
			if err := loadSVGChildren(lvl, n.Children, m); err != nil {
				return err
			}
		case "use", "rect":
			if err := addSVGRect(lvl, n, m); err != nil {
				return err
			}
		case "polygon":
			if err := addSVGPolygon(lvl, n, m); err != nil {
				return err
			}
		}
	}
	return nil
}

func svgShapeBase(n *svgNode) (Shape, error) {
	fill, err := ParseColor(n.attr("fill"))
	if err != nil {
		return Shape{}, err
	}
	return Shape{
		ID: n.attr("id"),
		Key: HrefAndClipMask{
			URL:  n.attr("href"),
			Clip: clipID(n.attr("clip-path")),
		},
		Fill: fill,
	}, nil
}

// clipID reduces "url(#mask)" to "mask".
func clipID(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")") {
		v = v[4 : len(v)-1]
	}
	return strings.TrimPrefix(v, "#")
}

func addSVGRect(lvl *Level, n *svgNode, m [6]float64) error {
	s, err := svgShapeBase(n)
	if err != nil {
		return err
	}
	var xy [4]float64
	for i, name := range []string{"x", "y", "width", "height"} {
		if xy[i], err = n.number(name); err != nil {
			return err
		}
	}
	w, h := xy[2], xy[3]
	if w <= 0 || h <= 0 {
		return fmt.Errorf("artstamps: <%s> %q needs a positive width and height", n.XMLName.Local, s.Key)
	}
	m = multiplyAffine(m, [6]float64{1, 0, 0, 1, xy[0], xy[1]})
	if s.Transform, err = decomposeAffine(m, w/2, h/2); err != nil {
		return err
	}
	s.Outline = RectOutline(w, h)
	lvl.Add(s)
	return nil
}

func addSVGPolygon(lvl *Level, n *svgNode, m [6]float64) error {
	s, err := svgShapeBase(n)
	if err != nil {
		return err
	}
	nums, err := parseNumbers(n.attr("points"))
	if err != nil {
		return fmt.Errorf("artstamps: <polygon> points: %w", err)
	}
	if len(nums)%2 != 0 {
		return fmt.Errorf("artstamps: <polygon> has an odd number of coordinates")
	}
	s.Outline = make([]Vec2, len(nums)/2)
	for i := range s.Outline {
		s.Outline[i] = Vec2{nums[2*i], nums[2*i+1]}
	}
	b := boundsOf(s.Outline)
	if s.Transform, err = decomposeAffine(m, b.X+b.Width/2, b.Y+b.Height/2); err != nil {
		return err
	}
	lvl.Add(s)
	return nil
}

// svgOut is the document WriteSVG encodes.
type svgOut struct {
	XMLName    xml.Name     `xml:"svg"`
	Xmlns      string       `xml:"xmlns,attr"`
	XmlnsXlink string       `xml:"xmlns:xlink,attr"`
	Width      string       `xml:"width,attr"`
	Height     string       `xml:"height,attr"`
	Elements   []svgElement `xml:"g>element"`
}

type svgElement struct {
	XMLName   xml.Name
	ID        string `xml:"id,attr,omitempty"`
	Href      string `xml:"xlink:href,attr,omitempty"`
	ClipPath  string `xml:"clip-path,attr,omitempty"`
	Width     string `xml:"width,attr,omitempty"`
	Height    string `xml:"height,attr,omitempty"`
	Points    string `xml:"points,attr,omitempty"`
	Transform string `xml:"transform,attr,omitempty"`
	Fill      string `xml:"fill,attr"`
}

// WriteSVG encodes the level in the format LoadSVG reads. Rectangular
// stamps become <use> elements; other outlines become <polygon>s.
func WriteSVG(w io.Writer, lvl *Level) error {
	doc := svgOut{
		Xmlns:      "http://www.w3.org/2000/svg",
		XmlnsXlink: "http://www.w3.org/1999/xlink",
		Width:      fmtFloat(lvl.Width),
		Height:     fmtFloat(lvl.Height),
		Elements:   make([]svgElement, 0, len(lvl.Shapes)),
	}
	for i := range lvl.Shapes {
		s := &lvl.Shapes[i]
		el := svgElement{
			ID:        s.ID,
			Href:      s.Key.URL,
			Transform: s.Transform.String(),
			Fill:      s.Fill.String(),
		}
		if s.Key.Clip != "" {
			el.ClipPath = "url(#" + s.Key.Clip + ")"
		}
		if rw, rh, ok := rectSize(s.Outline); ok {
			el.XMLName.Local = "use"
			if s.Key.URL == "" {
				el.XMLName.Local = "rect"
			}
			el.Width, el.Height = fmtFloat(rw), fmtFloat(rh)
			// LoadSVG anchors rectangles at their centre.
			if s.Transform.MidX != rw/2 || s.Transform.MidY != rh/2 {
				el.Transform = rePivot(s.Transform, rw/2, rh/2).String()
			}
		} else {
			el.XMLName.Local = "polygon"
			pts := make([]string, len(s.Outline))
			for j, p := range s.Outline {
				pts[j] = fmtFloat(p.X) + "," + fmtFloat(p.Y)
			}
			el.Points = strings.Join(pts, " ")
		}
		doc.Elements = append(doc.Elements, el)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("artstamps: failed to encode SVG: %w", err)
	}
	return enc.Close()
}

// rectSize reports whether outline is RectOutline(w, h).
func rectSize(outline []Vec2) (w, h float64, ok bool) {
	if len(outline) != 4 {
		return 0, 0, false
	}
	w, h = outline[2].X, outline[2].Y
	want := RectOutline(w, h)
	for i := range want {
		if outline[i] != want[i] {
			return 0, 0, false
		}
	}
	return w, h, w > 0 && h > 0
}

// rePivot returns the transform with pivot (midX, midY) that places
// geometry exactly like t.
func rePivot(t Transform, midX, midY float64) Transform {
	m := t.Matrix()
	px, py := transformPoint(m, midX, midY)
	return Transform{Scale: t.Scale, MidX: midX, MidY: midY, Rotate: t.Rotate, TX: px - midX, TY: py - midY}
}
