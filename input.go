package artstamps

import (
	"fmt"
	"strings"
	"time"
)

// Key identifies a keyboard key independently of any windowing library.
// Hosts translate their native key codes into Keys.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyRightShift
	KeyEscape
	KeyEnter   // main Return key
	KeyKPEnter // keypad Enter
	KeySpace
	KeyL
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:    "unknown",
	KeyLeft:       "left",
	KeyRight:      "right",
	KeyUp:         "up",
	KeyDown:       "down",
	KeyLeftShift:  "lshift",
	KeyRightShift: "rshift",
	KeyEscape:     "escape",
	KeyEnter:      "return",
	KeyKPEnter:    "kpenter",
	KeySpace:      "space",
	KeyL:          "l",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// ParseKey returns the Key with the given name, case-insensitively.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := KeyLeft; k < keyCount; k++ {
		if keyNames[k] == name {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("artstamps: unknown key %q", name)
}

// InputState is the keyboard state for one frame: which keys are held, which
// key went down this frame, and whether that press is an auto-repeat.
// The zero value is ready to use.
type InputState struct {
	down    [keyCount]bool
	held    int
	pressed Key
	repeat  bool
	quit    bool

	injectQueue []syntheticKeyEvent
}

// Press records a key going down and reports whether it was newly pressed.
// Presses of keys already held are OS auto-repeat and are ignored.
func (in *InputState) Press(k Key) bool {
	if k >= keyCount || in.down[k] {
		return false
	}
	in.down[k] = true
	in.held++
	in.pressed = k
	in.repeat = false
	return true
}

// Release records a key going up.
func (in *InputState) Release(k Key) {
	if k >= keyCount || !in.down[k] {
		return
	}
	in.down[k] = false
	in.held--
}

// IsDown reports whether k is held.
func (in *InputState) IsDown(k Key) bool {
	return k < keyCount && in.down[k]
}

// JustPressed reports whether k went down this frame.
func (in *InputState) JustPressed(k Key) bool {
	return k != KeyUnknown && in.pressed == k
}

// Pressed returns the key that went down this frame, or KeyUnknown.
func (in *InputState) Pressed() Key {
	return in.pressed
}

// Repeat reports whether this frame's input is a held-key repeat rather than
// a fresh press.
func (in *InputState) Repeat() bool {
	return in.repeat
}

// AnyDown reports whether any key is held.
func (in *InputState) AnyDown() bool {
	return in.held > 0
}

// Shift reports whether either shift key is held.
func (in *InputState) Shift() bool {
	return in.down[KeyLeftShift] || in.down[KeyRightShift]
}

// RequestQuit marks the session for shutdown, e.g. when the window is
// closed. Escape requests it implicitly.
func (in *InputState) RequestQuit() {
	in.quit = true
}

// QuitRequested reports whether the host or the player asked to stop.
func (in *InputState) QuitRequested() bool {
	return in.quit || in.down[KeyEscape]
}

// EndFrame clears per-frame state. Held keys persist and later frames are
// marked as repeats until a new key goes down.
func (in *InputState) EndFrame() {
	in.pressed = KeyUnknown
	in.repeat = true
}

// Repeater paces held-key movement. The first step fires immediately; while
// keys stay held the interval between steps starts at Start and shrinks by
// Step each time it fires, down to Fastest.
type Repeater struct {
	Start   time.Duration
	Step    time.Duration
	Fastest time.Duration
	// FastMultiplier scales movement once the interval reaches Fastest.
	FastMultiplier float64

	interval time.Duration
	waited   time.Duration
	active   bool
}

// NewRepeater returns the pacing used by the original prototypes:
// 200ms, shrinking by 75ms, down to 1ms, with a 4x speed-up at full rate.
func NewRepeater() *Repeater {
	return &Repeater{
		Start:          200 * time.Millisecond,
		Step:           75 * time.Millisecond,
		Fastest:        time.Millisecond,
		FastMultiplier: 4,
	}
}

// Tick advances the repeater by dt and reports whether held keys should
// apply this frame.
func (r *Repeater) Tick(held bool, dt time.Duration) bool {
	if !held {
		r.Reset()
		return false
	}
	if !r.active {
		r.active = true
		r.interval = r.Start
		r.waited = 0
		return true
	}
	r.waited += dt
	if r.waited < r.interval {
		return false
	}
	r.waited = 0
	if r.interval > r.Step+r.Fastest {
		r.interval -= r.Step
	} else {
		r.interval = r.Fastest
	}
	return true
}

// Interval returns the current wait between repeats.
func (r *Repeater) Interval() time.Duration {
	if !r.active {
		return r.Start
	}
	return r.interval
}

// Multiplier returns FastMultiplier once repeats run at the fastest
// interval, and 1 otherwise.
func (r *Repeater) Multiplier() float64 {
	if r.active && r.interval <= r.Fastest && r.FastMultiplier > 0 {
		return r.FastMultiplier
	}
	return 1
}

// Reset returns the repeater to its idle state.
func (r *Repeater) Reset() {
	r.active = false
	r.interval = r.Start
	r.waited = 0
}
