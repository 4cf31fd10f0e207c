package artstamps

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string `yaml:"action"`
	Key    string `yaml:"key,omitempty"`
	Label  string `yaml:"label,omitempty"`
	Frames int    `yaml:"frames,omitempty"`

	key Key
}

// inputScript is the top-level structure of an input script.
type inputScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner sequences injected key events and screenshots across frames
// for automated play-throughs. Attach it to a Session via SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses an input script. YAML and JSON are both accepted:
//
//	steps:
//	  - {action: press, key: right}
//	  - {action: wait, frames: 30}
//	  - {action: release, key: right}
//	  - {action: screenshot, label: after-move}
//
// Actions are press, release, tap, wait, screenshot and quit.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "tap":
			k, err := ParseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
			}
			st.key = k
		case "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScript attaches a ScriptRunner to the session. The runner's step
// method is called from Session.Update each frame.
func (s *Session) SetScript(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Session.Update.
func (r *ScriptRunner) step(s *Session, in *InputState) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		in.InjectPress(st.key)
	case "release":
		in.InjectRelease(st.key)
	case "tap":
		in.InjectTap(st.key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if s.screenshotFn != nil {
			s.screenshotFn(st.Label)
		}
	case "quit":
		in.RequestQuit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
