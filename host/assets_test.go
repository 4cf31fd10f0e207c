package host

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/phanxgames/artstamps"
)

func writeBMP(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bmp.Encode(f, img))
}

func TestStampPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "walls"), 0o755))
	writeBMP(t, filepath.Join(dir, "b.bmp"), 1, 1)
	writeBMP(t, filepath.Join(dir, "walls", "a.BMP"), 1, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	paths, err := StampPaths(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b.bmp"),
		filepath.Join(dir, "walls", "a.BMP"),
	}, paths)
}

func TestStampPathsMissingDir(t *testing.T) {
	paths, err := StampPaths(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDecodeAll(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, name := range []string{"a.bmp", "b.bmp", "c.bmp"} {
		p := filepath.Join(dir, name)
		writeBMP(t, p, i+1, 2)
		paths = append(paths, p)
	}

	imgs, err := decodeAll(paths)
	require.NoError(t, err)
	require.Len(t, imgs, 3)
	for i, img := range imgs {
		assert.Equal(t, i+1, img.Bounds().Dx(), "image %d width", i)
	}
	_, g, _, _ := imgs[0].At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), g)
}

func TestDecodeAllError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bmp")
	writeBMP(t, good, 1, 1)
	bad := filepath.Join(dir, "bad.bmp")
	require.NoError(t, os.WriteFile(bad, []byte("not a bitmap"), 0o644))

	_, err := decodeAll([]string{good, bad})
	assert.ErrorContains(t, err, "bad.bmp")
}

func TestInventoryName(t *testing.T) {
	assert.Equal(t, "rock", inventoryName("stamps/rock.bmp"))
	assert.Equal(t, "rock", inventoryName("#rock"))
	assert.Equal(t, "rock", inventoryName("rock.svg"))
}

func TestInventoryLookupNil(t *testing.T) {
	var inv *Inventory
	_, ok := inv.Lookup(artstamps.HrefAndClipMask{URL: "rock.bmp"})
	assert.False(t, ok)
	assert.Equal(t, 0, inv.Len())
}
