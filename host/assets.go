package host

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/artstamps"
)

// decodeBMP reads a BMP file from disk.
func decodeBMP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// decodeAll decodes every path concurrently. The result is index-aligned
// with paths; the first failure cancels the rest.
func decodeAll(paths []string) ([]image.Image, error) {
	out := make([]image.Image, len(paths))
	var g errgroup.Group
	g.SetLimit(8)
	for i, p := range paths {
		g.Go(func() error {
			img, err := decodeBMP(p)
			if err != nil {
				return err
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadImages decodes BMP files and uploads them as Ebitengine images.
func LoadImages(paths ...string) ([]*ebiten.Image, error) {
	decoded, err := decodeAll(paths)
	if err != nil {
		return nil, err
	}
	imgs := make([]*ebiten.Image, len(decoded))
	for i, img := range decoded {
		imgs[i] = ebiten.NewImageFromImage(img)
	}
	return imgs, nil
}

// StampPaths lists the .bmp files under dir in lexical order. A missing
// directory yields no paths.
func StampPaths(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".bmp") {
			paths = append(paths, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return paths, err
}

// Inventory holds stamp artwork keyed by file name.
type Inventory struct {
	images map[string]*ebiten.Image
}

// LoadInventory loads every stamp image under dir.
func LoadInventory(dir string) (*Inventory, error) {
	paths, err := StampPaths(dir)
	if err != nil {
		return nil, err
	}
	imgs, err := LoadImages(paths...)
	if err != nil {
		return nil, err
	}
	inv := &Inventory{images: make(map[string]*ebiten.Image, len(paths))}
	for i, p := range paths {
		inv.images[inventoryName(p)] = imgs[i]
	}
	return inv, nil
}

// Len returns the number of loaded stamps.
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.images)
}

// Lookup finds the artwork for a stamp by its href, matched on the file's
// base name without extension.
func (inv *Inventory) Lookup(key artstamps.HrefAndClipMask) (*ebiten.Image, bool) {
	if inv == nil || key.URL == "" {
		return nil, false
	}
	img, ok := inv.images[inventoryName(key.URL)]
	return img, ok
}

func inventoryName(path string) string {
	path = strings.TrimPrefix(path, "#")
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
