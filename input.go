package stampboard

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSource is polled once per tick for the primary pointer and the cancel
// key. Coordinates are logical screen pixels.
type InputSource interface {
	// Pointer returns the pointer position and whether the primary button
	// (or a touch) is held.
	Pointer() (x, y float64, pressed bool)
	// CancelPressed reports whether the cancel key went down this tick.
	CancelPressed() bool
}

// ebitenInput reads mouse, the first touch, and Escape from Ebitengine.
type ebitenInput struct {
	scale     func() float64
	touches   []ebiten.TouchID
	touching  bool
	lastTouch Vec2
}

func (in *ebitenInput) Pointer() (float64, float64, bool) {
	s := in.scale()
	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	if len(in.touches) > 0 {
		tx, ty := ebiten.TouchPosition(in.touches[0])
		in.touching = true
		in.lastTouch = Vec2{float64(tx) / s, float64(ty) / s}
		return in.lastTouch.X, in.lastTouch.Y, true
	}
	if in.touching {
		// Release where the finger lifted, not where the mouse cursor sits.
		in.touching = false
		return in.lastTouch.X, in.lastTouch.Y, false
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx) / s, float64(my) / s, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (in *ebitenInput) CancelPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

type pointerState struct {
	down      bool
	x, y      float64
	hoverNode *Node
	pressNode *Node // receives every event until release
	panning   bool  // the viewport took the press
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's untransformed
// bounds. Containers are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order, appending interactable
// leaf nodes to buf. Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.paintOrder() {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitLayer finds the topmost interactable node under the layer-space point.
func (b *Board) hitLayer(root *Node, x, y float64) *Node {
	b.hitBuf = collectInteractable(root, b.hitBuf[:0])
	for i := len(b.hitBuf) - 1; i >= 0; i-- {
		n := b.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// hitTest checks the overlay first, then the world layer through the viewport.
func (b *Board) hitTest(sx, sy float64) *Node {
	if b.overlay.Visible {
		if n := b.hitLayer(b.overlay, sx, sy); n != nil {
			return n
		}
	}
	wx, wy := b.viewport.ScreenToWorld(sx, sy)
	return b.hitLayer(b.world, wx, wy)
}

// layerPoint converts a screen point into the coordinate space of n's layer.
func (b *Board) layerPoint(n *Node, sx, sy float64) (float64, float64) {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	if root == b.overlay {
		return sx, sy
	}
	return b.viewport.ScreenToWorld(sx, sy)
}

// dispatch delivers an event to n and then to its ancestors until a handler
// stops propagation. Returns whether propagation was stopped.
func (b *Board) dispatch(n *Node, t EventType, sx, sy float64, pressed bool) bool {
	x, y := b.layerPoint(n, sx, sy)
	e := &PointerEvent{
		Type: t, Node: n,
		ScreenX: sx, ScreenY: sy, X: x, Y: y,
		PrimaryDown: pressed,
	}
	for cur := n; cur != nil && !e.stopped; cur = cur.Parent {
		var fn func(*PointerEvent)
		switch t {
		case EventPointerOver:
			fn = cur.OnPointerOver
		case EventPointerOut:
			fn = cur.OnPointerOut
		case EventPointerDown:
			fn = cur.OnPointerDown
		case EventPointerMove:
			fn = cur.OnPointerMove
		case EventPointerUp:
			fn = cur.OnPointerUp
		case EventPointerUpOutside:
			fn = cur.OnPointerUpOutside
		}
		if fn != nil {
			fn(e)
		}
	}
	return e.stopped
}

// processInput consumes one injected event if any are queued, otherwise polls
// the InputSource.
func (b *Board) processInput() {
	var (
		sx, sy  float64
		pressed bool
		cancel  bool
	)
	if evt, ok := b.popInjected(); ok {
		switch evt.kind {
		case injectResize:
			b.setScreen(evt.x, evt.y)
			return
		case injectCancel:
			sx, sy, pressed, cancel = b.pointer.x, b.pointer.y, b.pointer.down, true
		default:
			sx, sy, pressed = evt.x, evt.y, evt.pressed
		}
	} else if b.input != nil {
		sx, sy, pressed = b.input.Pointer()
		cancel = b.input.CancelPressed()
	} else {
		return
	}

	if cancel && b.modal.IsOpen() {
		b.modal.Close()
	}
	b.processPointer(sx, sy, pressed)
}

func (b *Board) refreshLayers() {
	updateWorldTransform(b.world, identityTransform, 1, false)
	updateWorldTransform(b.overlay, identityTransform, 1, false)
}

// processPointer runs the pointer state machine for one tick.
func (b *Board) processPointer(sx, sy float64, pressed bool) {
	b.refreshLayers()

	ps := &b.pointer
	target := b.hitTest(sx, sy)

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.IsDisposed() {
			b.dispatch(ps.hoverNode, EventPointerOut, sx, sy, pressed)
		}
		if target != nil {
			b.dispatch(target, EventPointerOver, sx, sy, pressed)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.pressNode = target
		stopped := false
		if target != nil {
			stopped = b.dispatch(target, EventPointerDown, sx, sy, true)
		}
		if !stopped {
			ps.panning = b.viewport.DragStart(sx, sy)
		}
	case !pressed && ps.down:
		if sx != ps.x || sy != ps.y {
			// The pointer moved on its way up; deliver that move first.
			b.pointerMoved(target, sx, sy, true)
			b.refreshLayers()
			target = b.hitTest(sx, sy)
		}
		ps.down = false
		if n := ps.pressNode; n != nil && !n.IsDisposed() {
			if target == n {
				b.dispatch(n, EventPointerUp, sx, sy, false)
			} else {
				b.dispatch(n, EventPointerUpOutside, sx, sy, false)
			}
		}
		if ps.panning {
			b.viewport.DragEnd()
			ps.panning = false
		}
		ps.pressNode = nil
	case sx != ps.x || sy != ps.y:
		b.pointerMoved(target, sx, sy, pressed)
	}
	ps.x, ps.y = sx, sy
}

// pointerMoved delivers a move to the captured node, or to the hover target
// when nothing is captured, and pans the viewport unless a handler stopped it.
func (b *Board) pointerMoved(target *Node, sx, sy float64, pressed bool) {
	ps := &b.pointer
	recv := target
	if ps.down && ps.pressNode != nil && !ps.pressNode.IsDisposed() {
		recv = ps.pressNode
	}
	stopped := false
	if recv != nil {
		stopped = b.dispatch(recv, EventPointerMove, sx, sy, pressed)
	}
	if ps.panning && !stopped {
		b.viewport.DragMove(sx, sy)
	}
}
