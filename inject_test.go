package stampboard

import "testing"

func TestInjectQueueCounts(t *testing.T) {
	tests := []struct {
		name  string
		queue func(b *Board)
		want  int
	}{
		{"press", func(b *Board) { b.InjectPress(1, 1) }, 1},
		{"click", func(b *Board) { b.InjectClick(1, 1) }, 2},
		{"drag 5", func(b *Board) { b.InjectDrag(0, 0, 10, 10, 5) }, 5},
		{"drag clamps to 2", func(b *Board) { b.InjectDrag(0, 0, 10, 10, 0) }, 2},
		{"cancel and resize", func(b *Board) { b.InjectCancel(); b.InjectResize(640, 480) }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			tt.queue(b)
			if got := b.PendingInput(); got != tt.want {
				t.Errorf("PendingInput() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	b := newTestBoard(t)
	b.InjectDrag(0, 100, 40, 0, 6)

	want := []syntheticEvent{
		{x: 0, y: 100, pressed: true},
		{x: 8, y: 80, pressed: true},
		{x: 16, y: 60, pressed: true},
		{x: 24, y: 40, pressed: true},
		{x: 32, y: 20, pressed: true},
		{x: 40, y: 0},
	}
	for i, w := range want {
		got, ok := b.popInjected()
		if !ok {
			t.Fatalf("queue ran dry at %d", i)
		}
		assertNear(t, "x", got.x, w.x)
		assertNear(t, "y", got.y, w.y)
		if got.pressed != w.pressed || got.kind != injectPointer {
			t.Errorf("event %d = %+v, want %+v", i, got, w)
		}
	}
	if _, ok := b.popInjected(); ok {
		t.Error("queue should be empty")
	}
}

func TestInjectConsumedOnePerTick(t *testing.T) {
	b := newTestBoard(t)
	b.InjectDrag(400, 300, 500, 300, 4)
	for want := 3; want >= 0; want-- {
		steps(b, 1)
		if got := b.PendingInput(); got != want {
			t.Fatalf("PendingInput() = %d, want %d", got, want)
		}
	}
}

func TestInjectWaitsForMount(t *testing.T) {
	b := NewBoard(Config{}, nil)
	t.Cleanup(b.Close)
	b.SetInput(nil)
	b.InjectClick(10, 10)
	steps(b, 3)
	if b.PendingInput() != 2 {
		t.Errorf("PendingInput() = %d, want 2 before the board is mounted", b.PendingInput())
	}
}

func TestInjectResize(t *testing.T) {
	b := newTestBoard(t)
	b.InjectResize(1024, 768)
	steps(b, 1)
	w, h := b.ScreenSize()
	if w != 1024 || h != 768 {
		t.Errorf("screen = %vx%v, want 1024x768", w, h)
	}
	if vw, vh := b.Viewport().ScreenSize(); vw != 1024 || vh != 768 {
		t.Errorf("viewport screen = %vx%v, want 1024x768", vw, vh)
	}
}
