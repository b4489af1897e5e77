package stampboard

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a board script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input, resizes and screenshots across
// ticks. Attach one with Board.SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script of the form
//
//	{"steps": [{"action": "click", "x": 400, "y": 300}, ...]}
//
// Actions: click, hover, drag, key (key "escape"), resize, wait, screenshot.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "click", "hover", "drag", "wait", "screenshot":
		case "key":
			if st.Key != "escape" {
				return nil, fmt.Errorf("parse script: step %d: unsupported key %q", i, st.Key)
			}
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("parse script: step %d: resize needs width and height", i)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a runner. Its step method runs from Update before input
// is processed each tick.
func (b *Board) SetScript(r *ScriptRunner) {
	b.script = r
}

// Done reports whether every step has executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *ScriptRunner) step(b *Board) {
	if r.done {
		return
	}
	// Let queued input drain before advancing.
	if len(b.injectQueue) > 0 {
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
	case "screenshot":
		b.Screenshot(st.Label)
	case "click":
		b.InjectClick(st.X, st.Y)
	case "hover":
		b.InjectHover(st.X, st.Y)
	case "drag":
		b.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		b.InjectCancel()
	case "resize":
		b.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(b.injectQueue) == 0 {
		r.done = true
	}
}
