package stampboard

type injectKind uint8

const (
	injectPointer injectKind = iota
	injectCancel
	injectResize
)

// syntheticEvent is a queued input event. Pointer events use logical screen
// coordinates, identical to real input. Resize events carry the new size in
// x and y.
type syntheticEvent struct {
	kind    injectKind
	x, y    float64
	pressed bool
}

// InjectPress queues a primary press at the given screen coordinates. Queued
// events are consumed one per tick, ahead of real input.
func (b *Board) InjectPress(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: injectPointer, x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the primary button held. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (b *Board) InjectMove(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: injectPointer, x: x, y: y, pressed: true})
}

// InjectHover queues a pointer move with no button held.
func (b *Board) InjectHover(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: injectPointer, x: x, y: y})
}

// InjectRelease queues a primary release at the given screen coordinates.
func (b *Board) InjectRelease(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: injectPointer, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two ticks.
func (b *Board) InjectClick(x, y float64) {
	b.InjectPress(x, y)
	b.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate ticks, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (b *Board) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	b.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		b.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	b.InjectRelease(toX, toY)
}

// InjectCancel queues a press of the cancel key (Escape).
func (b *Board) InjectCancel() {
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: injectCancel})
}

// InjectResize queues a change of the logical screen size.
func (b *Board) InjectResize(w, h float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: injectResize, x: w, y: h})
}

// PendingInput returns the number of queued synthetic events.
func (b *Board) PendingInput() int {
	return len(b.injectQueue)
}

func (b *Board) popInjected() (syntheticEvent, bool) {
	if len(b.injectQueue) == 0 {
		return syntheticEvent{}, false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]
	return evt, true
}
