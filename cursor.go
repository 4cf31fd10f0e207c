package artstamps

// cursorGrid is the snap size used while the cursor is locked.
const cursorGrid = 4

// Cursor is a keyboard-steerable pointer. Arrow keys nudge it, the mouse
// moves it directly, and Return, Space or keypad Enter click.
type Cursor struct {
	X, Y   int
	Locked bool
	Color  Color

	lastKPEnter *[2]int
}

// MoveTo places the cursor at a pointer position.
func (c *Cursor) MoveTo(x, y int) {
	c.X, c.Y = x, y
}

// Position returns the cursor position, snapped down to the grid while
// Locked.
func (c *Cursor) Position() (int, int) {
	return c.snap(c.X), c.snap(c.Y)
}

func (c *Cursor) snap(v int) int {
	if !c.Locked {
		return v
	}
	return (v / cursorGrid) * cursorGrid
}

// Apply moves the cursor for held arrow keys, scaled by mult, and reports
// whether the frame's input amounts to a click. Keypad Enter held without
// moving the cursor does not click again on repeats.
func (c *Cursor) Apply(in *InputState, mult float64) (clicked bool) {
	step := int(mult)
	if step < 1 {
		step = 1
	}
	if in.IsDown(KeyLeft) {
		c.X -= step
	}
	if in.IsDown(KeyRight) {
		c.X += step
	}
	if in.IsDown(KeyUp) {
		c.Y -= step
	}
	if in.IsDown(KeyDown) {
		c.Y += step
	}

	if in.IsDown(KeyKPEnter) {
		pos := [2]int{c.X, c.Y}
		if c.lastKPEnter == nil || *c.lastKPEnter != pos || !in.Repeat() {
			clicked = true
		}
		c.lastKPEnter = &pos
	} else {
		c.lastKPEnter = nil
	}
	if !in.Repeat() && (in.JustPressed(KeyEnter) || in.JustPressed(KeySpace)) {
		clicked = true
	}
	if in.JustPressed(KeyL) {
		c.Locked = !c.Locked
	}
	return clicked
}
