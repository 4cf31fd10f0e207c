package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS plus the session's last frame
// stats. The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img   *ebiten.Image
	since float64
	text  string
}

func (o *fpsOverlay) update(dt float64, g *Game) {
	o.since += dt
	if o.img != nil && o.since < 0.5 {
		return
	}
	o.since = 0
	st := g.session.LastFrame()
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nhits: %d cache: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), st.Corrections, g.session.Cache().Len())
	if o.img == nil {
		// 140x48 is enough for the four short lines above.
		o.img = ebiten.NewImage(140, 48)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}
