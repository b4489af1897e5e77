package stampboard

import "math"

const (
	// moveThreshold is how far, in world units on either axis, a stamp must
	// travel before a press counts as a drag.
	moveThreshold = 2
	// clickRadiusSq bounds the squared displacement of a release that still
	// counts as a click.
	clickRadiusSq = 9
)

// StampDescriptor describes one stamp on the board. Rotation is in radians.
type StampDescriptor struct {
	ID       string
	URL      string
	X, Y     float64
	Scale    float64
	Rotation float64
}

// DragState is the transient per-stamp state of a press. Offsets and start
// coordinates are in the stamp layer's space.
type DragState struct {
	Dragging         bool
	OffsetX, OffsetY float64
	StartX, StartY   float64
	Moved            bool
	BaseScale        float64
}

// StampPhase is a stamp's position in the hover/press state machine.
type StampPhase uint8

const (
	StampIdle StampPhase = iota
	StampHovered
	StampPressed
)

func (p StampPhase) String() string {
	switch p {
	case StampIdle:
		return "idle"
	case StampHovered:
		return "hovered"
	case StampPressed:
		return "pressed"
	default:
		return "unknown"
	}
}

type stampEntry struct {
	desc  StampDescriptor
	index int
	node  *Node
	tex   *Texture
	phase StampPhase
	drag  DragState
}

// StampController owns the stamp sprites and their interaction state. State
// lives in a map keyed by stamp id rather than on the nodes.
type StampController struct {
	board   *Board
	layer   *Node
	entries map[string]*stampEntry
}

func newStampController(b *Board, layer *Node) *StampController {
	return &StampController{
		board:   b,
		layer:   layer,
		entries: make(map[string]*stampEntry),
	}
}

// Attach creates the sprite for a stamp whose texture has resolved. index is
// the descriptor's position in the configured list; stamps keep that relative
// paint order no matter which texture arrives first. Attaching an id twice
// is a no-op.
func (c *StampController) Attach(desc StampDescriptor, index int, tex *Texture) *Node {
	if e, ok := c.entries[desc.ID]; ok {
		return e.node
	}
	n := NewSprite("stamp:"+desc.ID, tex)
	n.SetAnchorCenter()
	n.SetPosition(desc.X, desc.Y)
	n.SetScale(desc.Scale)
	n.SetRotation(desc.Rotation)
	n.Interactable = true

	e := &stampEntry{desc: desc, index: index, node: n, tex: tex}
	e.drag.BaseScale = desc.Scale
	c.entries[desc.ID] = e

	at := len(c.layer.children)
	for i, child := range c.layer.children {
		if other := c.entryFor(child); other != nil && other.index > index {
			at = i
			break
		}
	}
	c.layer.AddChildAt(n, at)

	n.OnPointerOver = func(ev *PointerEvent) { c.pointerOver(e, ev) }
	n.OnPointerOut = func(ev *PointerEvent) { c.pointerOut(e, ev) }
	n.OnPointerDown = func(ev *PointerEvent) { c.pointerDown(e, ev) }
	n.OnPointerMove = func(ev *PointerEvent) { c.pointerMove(e, ev) }
	n.OnPointerUp = func(ev *PointerEvent) { c.pointerUp(e, ev, true) }
	n.OnPointerUpOutside = func(ev *PointerEvent) { c.pointerUp(e, ev, false) }
	return n
}

// Remove disposes a stamp's sprite. An open modal showing it falls back to
// the shrink close.
func (c *StampController) Remove(id string) {
	e, ok := c.entries[id]
	if !ok {
		return
	}
	delete(c.entries, id)
	if e.drag.Dragging {
		vp := c.board.viewport
		vp.Resume(BehaviorDrag)
		vp.Resume(BehaviorDecelerate)
	}
	e.node.Dispose()
}

// Node returns the sprite for a stamp id, or nil.
func (c *StampController) Node(id string) *Node {
	if e, ok := c.entries[id]; ok {
		return e.node
	}
	return nil
}

// Texture returns the texture for a stamp id, or nil.
func (c *StampController) Texture(id string) *Texture {
	if e, ok := c.entries[id]; ok {
		return e.tex
	}
	return nil
}

// Len returns the number of stamps on the board.
func (c *StampController) Len() int {
	return len(c.entries)
}

// Phase returns a stamp's interaction phase.
func (c *StampController) Phase(id string) StampPhase {
	if e, ok := c.entries[id]; ok {
		return e.phase
	}
	return StampIdle
}

// Drag returns a copy of a stamp's drag state.
func (c *StampController) Drag(id string) DragState {
	if e, ok := c.entries[id]; ok {
		return e.drag
	}
	return DragState{}
}

func (c *StampController) entryFor(n *Node) *stampEntry {
	for _, e := range c.entries {
		if e.node == n {
			return e
		}
	}
	return nil
}

// parentPoint converts an event position into the stamp's parent space.
func parentPoint(n *Node, ev *PointerEvent) (float64, float64) {
	if n.Parent == nil {
		return ev.X, ev.Y
	}
	return n.Parent.WorldToLocal(ev.X, ev.Y)
}

func (c *StampController) pointerOver(e *stampEntry, _ *PointerEvent) {
	if e.drag.Dragging {
		return
	}
	e.phase = StampHovered
	HoverIn(c.board.animator, e.node, e.drag.BaseScale)
}

func (c *StampController) pointerOut(e *stampEntry, _ *PointerEvent) {
	if e.drag.Dragging {
		return
	}
	e.phase = StampIdle
	HoverOut(c.board.animator, e.node, e.drag.BaseScale)
}

func (c *StampController) pointerDown(e *stampEntry, ev *PointerEvent) {
	ev.StopPropagation()
	n := e.node
	px, py := parentPoint(n, ev)
	e.drag = DragState{
		Dragging:  true,
		OffsetX:   n.X - px,
		OffsetY:   n.Y - py,
		StartX:    n.X,
		StartY:    n.Y,
		BaseScale: e.drag.BaseScale,
	}
	e.phase = StampPressed
	Press(c.board.animator, n, e.drag.BaseScale)

	vp := c.board.viewport
	vp.Pause(BehaviorDrag)
	vp.Pause(BehaviorDecelerate)

	n.BringToFront()
	c.board.emit(EventStampPressed, e.desc.ID, n.X, n.Y)
}

func (c *StampController) pointerMove(e *stampEntry, ev *PointerEvent) {
	if !ev.PrimaryDown || !e.drag.Dragging {
		return
	}
	ev.StopPropagation()
	px, py := parentPoint(e.node, ev)
	nx, ny := px+e.drag.OffsetX, py+e.drag.OffsetY
	if !e.drag.Moved && (math.Abs(nx-e.drag.StartX) > moveThreshold || math.Abs(ny-e.drag.StartY) > moveThreshold) {
		e.drag.Moved = true
	}
	e.node.SetPosition(nx, ny)
}

func (c *StampController) pointerUp(e *stampEntry, ev *PointerEvent, inside bool) {
	ev.StopPropagation()
	if !e.drag.Dragging {
		return
	}
	e.drag.Dragging = false
	if inside {
		e.phase = StampHovered
	} else {
		e.phase = StampIdle
	}
	n := e.node
	Settle(c.board.animator, n, e.drag.BaseScale)

	vp := c.board.viewport
	vp.Resume(BehaviorDrag)
	vp.Resume(BehaviorDecelerate)

	dx, dy := n.X-e.drag.StartX, n.Y-e.drag.StartY
	if !e.drag.Moved && dx*dx+dy*dy <= clickRadiusSq {
		c.board.modal.Open(e.desc.ID)
		return
	}
	if e.drag.Moved {
		c.board.emit(EventStampMoved, e.desc.ID, n.X, n.Y)
	}
}
