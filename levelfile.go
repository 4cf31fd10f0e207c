package artstamps

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default size of the empty level used when no level file exists.
const (
	DefaultLevelWidth  = 1024
	DefaultLevelHeight = 768
)

type yamlLevel struct {
	Width  float64     `yaml:"width"`
	Height float64     `yaml:"height"`
	Shapes []yamlShape `yaml:"shapes"`
}

type yamlShape struct {
	ID        string         `yaml:"id,omitempty"`
	Href      string         `yaml:"href,omitempty"`
	Clip      string         `yaml:"clip,omitempty"`
	Width     float64        `yaml:"width,omitempty"`
	Height    float64        `yaml:"height,omitempty"`
	Points    [][2]float64   `yaml:"points,omitempty"`
	Transform *yamlPlacement `yaml:"transform,omitempty"`
	Fill      string         `yaml:"fill,omitempty"`
}

type yamlPlacement struct {
	Scale  *float64 `yaml:"scale,omitempty"`
	Rotate float64  `yaml:"rotate,omitempty"`
	TX     float64  `yaml:"tx,omitempty"`
	TY     float64  `yaml:"ty,omitempty"`
}

// LoadYAML reads a level description:
//
//	width: 1024
//	height: 768
//	shapes:
//	  - href: stamps/rock.bmp
//	    width: 32
//	    height: 32
//	    transform: {scale: 2, rotate: 45, tx: 100, ty: 80}
//	    fill: "#804020"
//	  - points: [[0, 0], [0, 40], [120, 40]]
//
// Shapes without points are width x height rectangles. The pivot is the
// centre of the shape's nominal bounds.
func LoadYAML(r io.Reader) (*Level, error) {
	var doc yamlLevel
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("artstamps: failed to parse level YAML: %w", err)
	}
	lvl := NewLevel(doc.Width, doc.Height)
	for i, ys := range doc.Shapes {
		s, err := ys.shape()
		if err != nil {
			return nil, fmt.Errorf("artstamps: level shape %d: %w", i, err)
		}
		lvl.Add(s)
	}
	return lvl, nil
}

func (ys yamlShape) shape() (Shape, error) {
	fill, err := ParseColor(ys.Fill)
	if err != nil {
		return Shape{}, err
	}
	s := Shape{
		ID:   ys.ID,
		Key:  HrefAndClipMask{URL: ys.Href, Clip: ys.Clip},
		Fill: fill,
	}
	if len(ys.Points) > 0 {
		s.Outline = make([]Vec2, len(ys.Points))
		for i, p := range ys.Points {
			s.Outline[i] = Vec2{p[0], p[1]}
		}
		b := boundsOf(s.Outline)
		s.Transform = Transform{Scale: 1, MidX: b.X + b.Width/2, MidY: b.Y + b.Height/2}
	} else {
		if ys.Width <= 0 || ys.Height <= 0 {
			return Shape{}, errors.New("rectangle needs a positive width and height")
		}
		s.Outline = RectOutline(ys.Width, ys.Height)
		s.Transform = NewTransform(ys.Width, ys.Height)
	}
	if p := ys.Transform; p != nil {
		if p.Scale != nil {
			s.Transform.Scale = *p.Scale
		}
		s.Transform.Rotate = p.Rotate
		s.Transform.TX = p.TX
		s.Transform.TY = p.TY
	}
	return s, nil
}

// LoadLevel reads a level file, choosing the format by extension (.svg,
// .yaml or .yml). A missing file yields an empty default-sized level.
func LoadLevel(path string) (*Level, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLevel(DefaultLevelWidth, DefaultLevelHeight), nil
	}
	if err != nil {
		return nil, fmt.Errorf("artstamps: open level: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return LoadSVG(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	}
	return nil, fmt.Errorf("artstamps: unsupported level format %q", filepath.Ext(path))
}

// SaveLevel writes the level as SVG.
func SaveLevel(path string, lvl *Level) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSVG(f, lvl); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
