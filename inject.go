package artstamps

// syntheticKeyEvent represents a single injected key transition.
type syntheticKeyEvent struct {
	key     Key
	pressed bool
}

// InjectPress queues a key press. Injected events are consumed one per
// frame by Session.Update, before the frame's movement is applied.
func (in *InputState) InjectPress(k Key) {
	in.injectQueue = append(in.injectQueue, syntheticKeyEvent{key: k, pressed: true})
}

// InjectRelease queues a key release.
func (in *InputState) InjectRelease(k Key) {
	in.injectQueue = append(in.injectQueue, syntheticKeyEvent{key: k})
}

// InjectTap is a convenience that queues a press followed by a release.
// Consumes two frames.
func (in *InputState) InjectTap(k Key) {
	in.InjectPress(k)
	in.InjectRelease(k)
}

// Pending returns the number of queued synthetic events.
func (in *InputState) Pending() int {
	return len(in.injectQueue)
}

// processInjected pops one queued event and applies it. Returns true if an
// event was consumed.
func (in *InputState) processInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if evt.pressed {
		in.Press(evt.key)
	} else {
		in.Release(evt.key)
	}
	return true
}
