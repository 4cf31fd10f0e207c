package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/artstamps"
)

var keyMap = map[ebiten.Key]artstamps.Key{
	ebiten.KeyArrowLeft:   artstamps.KeyLeft,
	ebiten.KeyArrowRight:  artstamps.KeyRight,
	ebiten.KeyArrowUp:     artstamps.KeyUp,
	ebiten.KeyArrowDown:   artstamps.KeyDown,
	ebiten.KeyShiftLeft:   artstamps.KeyLeftShift,
	ebiten.KeyShiftRight:  artstamps.KeyRightShift,
	ebiten.KeyEscape:      artstamps.KeyEscape,
	ebiten.KeyEnter:       artstamps.KeyEnter,
	ebiten.KeyNumpadEnter: artstamps.KeyKPEnter,
	ebiten.KeySpace:       artstamps.KeySpace,
	ebiten.KeyL:           artstamps.KeyL,
}

// translateKey maps an Ebitengine key to an artstamps key.
func translateKey(k ebiten.Key) (artstamps.Key, bool) {
	key, ok := keyMap[k]
	return key, ok
}

// keyPoller feeds Ebitengine key transitions into an InputState.
type keyPoller struct {
	buf []ebiten.Key
}

func (p *keyPoller) poll(in *artstamps.InputState) {
	p.buf = inpututil.AppendJustReleasedKeys(p.buf[:0])
	for _, k := range p.buf {
		if key, ok := translateKey(k); ok {
			in.Release(key)
		}
	}
	p.buf = inpututil.AppendJustPressedKeys(p.buf[:0])
	for _, k := range p.buf {
		if key, ok := translateKey(k); ok {
			in.Press(key)
		}
	}
}
