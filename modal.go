package stampboard

import "math"

// Pose is a sprite placement in screen space. Angle is in degrees.
type Pose struct {
	X, Y  float64
	Angle float64
	Scale float64
}

// ModalState is a snapshot of the modal viewer.
type ModalState struct {
	SourceStampID  string
	OverlayVisible bool
	DimAlpha       float64
	Pose           Pose
}

// Modal shows one stamp enlarged over a dimmed backdrop. It flies the stamp
// from its place on the board to the center of the screen and back again.
type Modal struct {
	board *Board
	dim   *Node

	sprite   *Node
	sourceID string
	open     bool
	closing  bool
	flyIn    *Tween
	fadeIn   *Tween
	resize   Subscription
}

func newModal(b *Board) *Modal {
	dim := NewSprite("modal:dim", nil)
	dim.Color = b.cfg.OverlayColor
	dim.Alpha = 0
	dim.Interactable = false
	m := &Modal{board: b, dim: dim}
	dim.OnPointerDown = func(ev *PointerEvent) {
		ev.StopPropagation()
		m.Close()
	}
	b.overlay.AddChild(dim)
	return m
}

// Margin returns the space left around a fitted modal sprite for a screen
// of w x h.
func Margin(w, h float64) float64 {
	switch {
	case w < 600:
		return 20
	case w < 1200:
		return h / 4
	default:
		return h / 2
	}
}

// FitScale returns the scale that fits a tw x th texture on a w x h screen
// inside Margin.
func FitScale(w, h, tw, th float64) float64 {
	if tw <= 0 || th <= 0 {
		return 1
	}
	m := Margin(w, h)
	return math.Min((w-m)/tw, (h-m)/th)
}

// globalPose returns where n currently appears on screen.
func (b *Board) globalPose(n *Node) Pose {
	refreshTransform(n)
	m := multiplyAffine(b.viewport.ViewMatrix(), n.worldTransform)
	w, h := nodeDimensions(n)
	x, y := transformPoint(m, w/2, h/2)
	return Pose{
		X:     x,
		Y:     y,
		Angle: math.Atan2(m[1], m[0]) * 180 / math.Pi,
		Scale: uniformScale(m),
	}
}

// IsOpen reports whether a modal exists, including while it closes.
func (m *Modal) IsOpen() bool {
	return m.open
}

// Closing reports whether the close animation is running.
func (m *Modal) Closing() bool {
	return m.closing
}

// State returns a snapshot of the modal.
func (m *Modal) State() ModalState {
	s := ModalState{
		OverlayVisible: m.board.overlay.Visible,
		DimAlpha:       m.dim.Alpha,
	}
	if !m.open {
		return s
	}
	s.SourceStampID = m.sourceID
	s.Pose = Pose{
		X:     m.sprite.X,
		Y:     m.sprite.Y,
		Angle: m.sprite.Angle(),
		Scale: m.sprite.ScaleX,
	}
	return s
}

// Open flies a stamp into the modal. It does nothing if a modal already
// exists or the stamp has no texture. Returns whether the modal opened.
func (m *Modal) Open(stampID string) bool {
	if m.open {
		return false
	}
	b := m.board
	src := b.stamps.Node(stampID)
	tex := b.stamps.Texture(stampID)
	if src == nil || tex == nil {
		logDebug("modal open ignored: stamp %q not on board", stampID)
		return false
	}

	pose := b.globalPose(src)
	sprite := NewSprite("modal:"+stampID, tex)
	sprite.SetAnchorCenter()
	sprite.SetPosition(pose.X, pose.Y)
	sprite.SetAngle(pose.Angle)
	sprite.SetScale(pose.Scale)
	b.overlay.AddChild(sprite)

	src.Visible = false
	m.sprite = sprite
	m.sourceID = stampID
	m.open = true
	m.closing = false

	w, h := b.screenW, b.screenH
	m.fitDim(w, h)
	m.dim.Alpha = 0
	m.dim.Interactable = true
	b.overlay.Visible = true

	vp := b.viewport
	vp.Pause(BehaviorDrag)
	vp.Pause(BehaviorPinch)
	vp.Pause(BehaviorWheel)
	vp.Pause(BehaviorDecelerate)

	m.fadeIn = b.animator.AnimateToProperties(m.dim, Props{PropAlpha: b.cfg.OverlayAlpha}, BackdropFadeDuration, EasePower1Out)
	m.flyIn = b.animator.AnimateToProperties(sprite, Props{
		PropX:     w / 2,
		PropY:     h / 2,
		PropAngle: 0,
		PropScale: FitScale(w, h, float64(tex.Width()), float64(tex.Height())),
	}, ModalOpenDuration, EasePower2Out)

	m.resize = b.OnResize(m.onResize)
	b.emit(EventModalOpened, stampID, src.X, src.Y)
	return true
}

// Close flies the sprite back to its stamp and hides the overlay. If the
// stamp is gone, the sprite shrinks in place instead. Does nothing unless a
// modal is open and not already closing.
func (m *Modal) Close() {
	if !m.open || m.closing {
		return
	}
	m.closing = true
	b := m.board

	var fly *Tween
	src := b.stamps.Node(m.sourceID)
	if src != nil && !src.IsDisposed() && src.Parent != nil {
		pose := b.globalPose(src)
		fly = b.animator.AnimateToProperties(m.sprite, Props{
			PropX:     pose.X,
			PropY:     pose.Y,
			PropAngle: pose.Angle,
			PropScale: pose.Scale,
		}, ModalCloseDuration, EasePower2InOut)
	} else {
		logDebug("modal close: stamp %q unavailable, shrinking", m.sourceID)
		fly = b.animator.AnimateToScale(m.sprite, FallbackCloseScale, FallbackCloseDuration, EasePower2InOut)
	}
	fade := b.animator.AnimateToProperties(m.dim, Props{PropAlpha: 0}, BackdropFadeDuration, EasePower1Out)
	Join(m.finishClose, fly, fade)
}

func (m *Modal) finishClose() {
	b := m.board
	m.resize.Unsubscribe()
	m.resize = Subscription{}

	if m.sprite != nil {
		m.sprite.Dispose()
	}
	m.dim.Alpha = 0
	m.dim.MarkDirty()
	m.dim.Interactable = false
	b.overlay.Visible = false

	vp := b.viewport
	vp.Resume(BehaviorDrag)
	vp.Resume(BehaviorPinch)
	vp.Resume(BehaviorWheel)
	vp.Resume(BehaviorDecelerate)

	id := m.sourceID
	var x, y float64
	if src := b.stamps.Node(id); src != nil {
		src.Visible = true
		x, y = src.X, src.Y
	}
	m.sprite = nil
	m.sourceID = ""
	m.flyIn, m.fadeIn = nil, nil
	m.open = false
	m.closing = false
	b.emit(EventModalClosed, id, x, y)
}

// fitDim stretches the backdrop over the whole screen.
func (m *Modal) fitDim(w, h float64) {
	m.dim.SetPosition(0, 0)
	m.dim.ScaleX, m.dim.ScaleY = w, h
	m.dim.MarkDirty()
}

func (m *Modal) onResize(w, h float64) {
	m.fitDim(w, h)
	if m.closing {
		return
	}
	if m.fadeIn != nil {
		m.fadeIn.Cancel()
	}
	m.dim.SetAlpha(m.board.cfg.OverlayAlpha)

	if m.flyIn != nil {
		m.flyIn.Cancel()
	}
	tex := m.sprite.Texture
	m.sprite.SetPosition(w/2, h/2)
	m.sprite.SetAngle(0)
	m.sprite.SetScale(FitScale(w, h, float64(tex.Width()), float64(tex.Height())))
}
