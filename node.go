package stampboard

// PointerEvent carries pointer data to per-node handlers.
//
// X and Y are in the coordinate space of the layer the node belongs to: world
// units for nodes under the board's world layer, screen pixels for nodes
// under the overlay. ScreenX and ScreenY are always screen pixels.
type PointerEvent struct {
	Type      EventType
	Node      *Node
	PointerID int
	ScreenX   float64
	ScreenY   float64
	X         float64
	Y         float64
	// PrimaryDown reports whether the primary button (or touch) is held.
	PrimaryDown bool

	stopped bool
}

// StopPropagation prevents the event from reaching the viewport after the
// node handlers have run.
func (e *PointerEvent) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *PointerEvent) Stopped() bool {
	return e.stopped
}

// nodeIDCounter is a plain counter (no atomic; the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for all node
// types to avoid interface dispatch on the hot path.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// Local transform. Rotation is in radians; the pivot is in pixels of the
	// node's own texture.
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	Alpha        float64
	Visible      bool
	Interactable bool
	ZIndex       int

	// Sprite and tiling fields.
	Texture *Texture
	Color   Color

	// Tiling fields (NodeTypeTiling). The texture is repeated over a
	// TilingWidth x TilingHeight area, each repetition scaled by TileScale.
	TilingWidth  float64
	TilingHeight float64
	TileScale    float64

	// Per-node callbacks (nil by default).
	OnPointerOver      func(*PointerEvent)
	OnPointerOut       func(*PointerEvent)
	OnPointerDown      func(*PointerEvent)
	OnPointerMove      func(*PointerEvent)
	OnPointerUp        func(*PointerEvent)
	OnPointerUpOutside func(*PointerEvent)

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.worldAlpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
	n.worldTransform = identityTransform
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node. A nil texture draws WhitePixel, so a
// sprite scaled to a size becomes a solid rectangle in its Color.
func NewSprite(name string, tex *Texture) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Texture: tex}
	nodeDefaults(n)
	return n
}

// NewTilingSprite creates a node that repeats tex over a w x h area.
func NewTilingSprite(name string, tex *Texture, w, h, tileScale float64) *Node {
	n := &Node{
		Name:         name,
		Type:         NodeTypeTiling,
		Texture:      tex,
		TilingWidth:  w,
		TilingHeight: h,
		TileScale:    tileScale,
	}
	nodeDefaults(n)
	return n
}

// SetAnchorCenter places the pivot at the center of the node's texture so that
// X/Y address the middle of the sprite and rotation spins around it.
func (n *Node) SetAnchorCenter() {
	w, h := nodeDimensions(n)
	n.SetPivot(w/2, h/2)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("stampboard: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("stampboard: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("stampboard: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("stampboard: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("stampboard: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("stampboard: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node. Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// BringToFront moves the node to the end of its parent's child list so it
// draws (and hit-tests) above its siblings with the same ZIndex.
func (n *Node) BringToFront() {
	p := n.Parent
	if p == nil || p.children[len(p.children)-1] == n {
		return
	}
	p.removeChildByPtr(n)
	p.children = append(p.children, n)
	p.childrenSorted = false
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.Texture = nil
	n.OnPointerOver = nil
	n.OnPointerOut = nil
	n.OnPointerDown = nil
	n.OnPointerMove = nil
	n.OnPointerUp = nil
	n.OnPointerUpOutside = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// nodeDimensions returns the untransformed size used for hit testing,
// anchoring and culling.
func nodeDimensions(n *Node) (w, h float64) {
	switch n.Type {
	case NodeTypeSprite:
		if n.Texture != nil {
			return float64(n.Texture.Width()), float64(n.Texture.Height())
		}
		return 1, 1
	case NodeTypeTiling:
		return n.TilingWidth, n.TilingHeight
	default:
		return 0, 0
	}
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Stable insertion sort: the common case is a handful of already sorted children.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// paintOrder returns the children in draw order.
func (n *Node) paintOrder() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if len(n.sortedChildren) == len(n.children) {
		return n.sortedChildren
	}
	return n.children
}
