package artstamps

import (
	"testing"
	"time"
)

func TestInputPressRelease(t *testing.T) {
	var in InputState
	if !in.Press(KeyLeft) {
		t.Fatal("first press should be new")
	}
	if in.Press(KeyLeft) {
		t.Error("press of a held key should be ignored")
	}
	if !in.IsDown(KeyLeft) || !in.AnyDown() {
		t.Error("left should be held")
	}
	if !in.JustPressed(KeyLeft) || in.Pressed() != KeyLeft || in.Repeat() {
		t.Error("left should be this frame's fresh press")
	}

	in.EndFrame()
	if in.JustPressed(KeyLeft) || !in.Repeat() {
		t.Error("after EndFrame the held key is a repeat")
	}
	if !in.IsDown(KeyLeft) {
		t.Error("held keys persist across frames")
	}

	in.Release(KeyLeft)
	in.Release(KeyLeft)
	if in.AnyDown() {
		t.Error("no key should be held after release")
	}
}

func TestInputShiftAndQuit(t *testing.T) {
	var in InputState
	in.Press(KeyRightShift)
	if !in.Shift() {
		t.Error("right shift should count as shift")
	}
	if in.QuitRequested() {
		t.Error("quit requested without escape")
	}
	in.Press(KeyEscape)
	if !in.QuitRequested() {
		t.Error("escape should request quit")
	}

	var host InputState
	host.RequestQuit()
	if !host.QuitRequested() {
		t.Error("RequestQuit should be sticky")
	}
}

func TestParseKey(t *testing.T) {
	for k := KeyLeft; k < keyCount; k++ {
		got, err := ParseKey(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKey(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, _ := ParseKey(" Return "); k != KeyEnter {
		t.Errorf("ParseKey is case-insensitive, got %v", k)
	}
	if _, err := ParseKey("f13"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := ParseKey("unknown"); err == nil {
		t.Error("unknown is not a bindable key")
	}
}

// --- Repeater ---

const frame = 16 * time.Millisecond

func TestRepeaterFirstTickFires(t *testing.T) {
	r := NewRepeater()
	if !r.Tick(true, frame) {
		t.Fatal("first held tick should fire")
	}
	if r.Tick(true, frame) {
		t.Error("second tick should wait for the start interval")
	}
	if r.Multiplier() != 1 {
		t.Errorf("Multiplier = %v, want 1", r.Multiplier())
	}
}

func TestRepeaterAccelerates(t *testing.T) {
	r := NewRepeater()
	r.Tick(true, 0)
	want := []time.Duration{125 * time.Millisecond, 50 * time.Millisecond, time.Millisecond, time.Millisecond}
	for i, w := range want {
		if !r.Tick(true, r.Interval()) {
			t.Fatalf("repeat %d did not fire after a full interval", i)
		}
		if r.Interval() != w {
			t.Errorf("repeat %d: Interval = %v, want %v", i, r.Interval(), w)
		}
	}
	if r.Multiplier() != 4 {
		t.Errorf("Multiplier at full rate = %v, want 4", r.Multiplier())
	}
}

func TestRepeaterReleaseResets(t *testing.T) {
	r := NewRepeater()
	r.Tick(true, 0)
	r.Tick(true, 200*time.Millisecond)
	if r.Tick(false, frame) {
		t.Error("released keys never fire")
	}
	if r.Interval() != r.Start {
		t.Errorf("Interval after release = %v, want %v", r.Interval(), r.Start)
	}
	if !r.Tick(true, frame) {
		t.Error("a fresh hold fires immediately")
	}
}

// --- Injection ---

func TestInjectTap(t *testing.T) {
	var in InputState
	in.InjectTap(KeySpace)
	if in.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", in.Pending())
	}

	in.processInjected()
	if !in.IsDown(KeySpace) || !in.JustPressed(KeySpace) {
		t.Error("first frame should press space")
	}
	in.EndFrame()

	in.processInjected()
	if in.IsDown(KeySpace) {
		t.Error("second frame should release space")
	}
	if in.processInjected() {
		t.Error("queue should be empty")
	}
}

func TestInjectOrder(t *testing.T) {
	var in InputState
	in.InjectPress(KeyUp)
	in.InjectPress(KeyLeft)
	in.InjectRelease(KeyUp)

	in.processInjected()
	in.processInjected()
	if !in.IsDown(KeyUp) || !in.IsDown(KeyLeft) {
		t.Error("both keys should be held after two frames")
	}
	in.processInjected()
	if in.IsDown(KeyUp) || !in.IsDown(KeyLeft) {
		t.Error("up should be released, left still held")
	}
}
