package stampboard

import (
	"strings"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, json, want string
	}{
		{"bad json", `{`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, `unknown action "jump"`},
		{"unknown key", `{"steps": [{"action": "key", "key": "space"}]}`, `unsupported key "space"`},
		{"resize without size", `{"steps": [{"action": "resize", "width": 800}]}`, "resize needs width and height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.json))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestScriptOpensAndClosesModal(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "hover", "x": 400, "y": 300},
		{"action": "click", "x": 400, "y": 300},
		{"action": "wait", "frames": 30},
		{"action": "screenshot", "label": "modal open"},
		{"action": "key", "key": "escape"},
		{"action": "wait", "frames": 30}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	b := newTestBoard(t, centerStamp("a"))
	log := &eventLog{}
	b.SetEventSink(log)
	b.SetScript(r)

	run(b, 2)
	if !r.Done() {
		t.Fatal("script should have finished")
	}
	if log.count(EventModalOpened) != 1 || log.count(EventModalClosed) != 1 {
		t.Errorf("events = %+v", log.events)
	}
	if len(b.screenshotQueue) != 1 || b.screenshotQueue[0] != "modal open" {
		t.Errorf("screenshot queue = %v", b.screenshotQueue)
	}
}

func TestScriptDragAndResize(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 400, "fromY": 300, "toX": 450, "toY": 320, "frames": 6},
		{"action": "resize", "width": 1024, "height": 768}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	b := newTestBoard(t, centerStamp("a"))
	b.SetScript(r)
	run(b, 0.5)

	n := b.Stamps().Node("a")
	assertNear(t, "X", n.X, 4050)
	assertNear(t, "Y", n.Y, 3020)
	if w, h := b.ScreenSize(); w != 1024 || h != 768 {
		t.Errorf("screen = %vx%v, want 1024x768", w, h)
	}
	if !r.Done() {
		t.Error("script should have finished")
	}
}

func TestScriptWaitsForMount(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [{"action": "click", "x": 1, "y": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	b := NewBoard(Config{}, nil)
	t.Cleanup(b.Close)
	b.SetInput(nil)
	b.SetScript(r)
	steps(b, 5)
	if r.cursor != 0 {
		t.Error("script should not start before the board is mounted")
	}
}
