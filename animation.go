package stampboard

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition durations in seconds.
const (
	HoverInDuration       = 0.16
	HoverOutDuration      = 0.18
	PressDuration         = 0.08
	SettleDuration        = 0.22
	ModalOpenDuration     = 0.32
	ModalCloseDuration    = 0.28
	BackdropFadeDuration  = 0.25
	FallbackCloseDuration = 0.2

	HoverScaleFactor = 1.04
	PressScaleFactor = 1.06
	// FallbackCloseScale is where a modal shrinks to when its source stamp is gone.
	FallbackCloseScale = 0.9
)

// Easing curves.
var (
	EasePower1Out   ease.TweenFunc = ease.OutQuad
	EasePower2Out   ease.TweenFunc = ease.OutCubic
	EasePower2InOut ease.TweenFunc = ease.InOutCubic
)

// Property is an animatable node field.
type Property uint8

const (
	PropX     Property = iota // Node.X
	PropY                     // Node.Y
	PropScale                 // Node.ScaleX and Node.ScaleY together
	PropAngle                 // Node.Rotation, expressed in degrees
	PropAlpha                 // Node.Alpha
)

// Props maps properties to absolute target values.
type Props map[Property]float64

func readProperty(n *Node, p Property) float64 {
	switch p {
	case PropX:
		return n.X
	case PropY:
		return n.Y
	case PropScale:
		return n.ScaleX
	case PropAngle:
		return n.Angle()
	case PropAlpha:
		return n.Alpha
	}
	return 0
}

func writeProperty(n *Node, p Property, v float64) {
	switch p {
	case PropX:
		n.X = v
	case PropY:
		n.Y = v
	case PropScale:
		n.ScaleX, n.ScaleY = v, v
	case PropAngle:
		n.SetAngle(v)
	case PropAlpha:
		n.Alpha = v
	}
	n.MarkDirty()
}

type propTween struct {
	prop Property
	to   float64
	tw   *gween.Tween
	done bool
}

// Tween animates one or more properties of a node to absolute targets. Tweens
// are created by an Animator and advanced by Animator.Update.
type Tween struct {
	target    *Node
	props     []propTween
	finished  bool
	cancelled bool

	onComplete []func()
	onSettle   []func()
}

// Done reports whether the tween finished or was cancelled.
func (t *Tween) Done() bool {
	return t.finished || t.cancelled
}

// Cancelled reports whether the tween was cancelled or fully superseded.
func (t *Tween) Cancelled() bool {
	return t.cancelled
}

// OnComplete registers fn to run when the tween reaches its targets. It does
// not run for cancelled tweens.
func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = append(t.onComplete, fn)
	return t
}

// Cancel stops the tween, leaving its properties where they are.
func (t *Tween) Cancel() {
	if t.Done() {
		return
	}
	t.cancelled = true
	t.settle()
}

func (t *Tween) settle() {
	fns := t.onSettle
	t.onSettle = nil
	for _, fn := range fns {
		fn()
	}
}

func (t *Tween) update(dt float32) {
	if t.Done() {
		return
	}
	if t.target != nil && t.target.IsDisposed() {
		t.Cancel()
		return
	}
	allDone := true
	for i := range t.props {
		pt := &t.props[i]
		if pt.done {
			continue
		}
		val, finished := pt.tw.Update(dt)
		if finished {
			// gween works in float32; land exactly on the float64 target.
			writeProperty(t.target, pt.prop, pt.to)
			pt.done = true
			continue
		}
		writeProperty(t.target, pt.prop, float64(val))
		allDone = false
	}
	if !allDone {
		return
	}
	t.finished = true
	for _, fn := range t.onComplete {
		fn()
	}
	t.onComplete = nil
	t.settle()
}

// release drops prop from t. A tween left with nothing to animate is cancelled.
func (t *Tween) release(p Property) {
	for i := range t.props {
		if t.props[i].prop == p {
			t.props = append(t.props[:i], t.props[i+1:]...)
			break
		}
	}
	if len(t.props) == 0 {
		t.Cancel()
	}
}

type ownerKey struct {
	node *Node
	prop Property
}

// Animator owns all running tweens. Starting a tween on a (node, property)
// pair takes that pair away from whichever tween was driving it, so rapid
// repeated input never leaves two tweens fighting over one field.
//
// There is no global animation manager; the board calls Update each tick.
type Animator struct {
	active []*Tween
	owners map[ownerKey]*Tween
}

// NewAnimator creates an empty Animator.
func NewAnimator() *Animator {
	return &Animator{owners: make(map[ownerKey]*Tween)}
}

// Len returns the number of running tweens.
func (a *Animator) Len() int {
	return len(a.active)
}

// AnimateToProperties tweens target's props to absolute values over duration
// seconds.
func (a *Animator) AnimateToProperties(target *Node, props Props, duration float64, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = EasePower2Out
	}
	t := &Tween{target: target}
	// Deterministic order so writes happen the same way every frame.
	for p := PropX; p <= PropAlpha; p++ {
		to, ok := props[p]
		if !ok {
			continue
		}
		key := ownerKey{target, p}
		if prev := a.owners[key]; prev != nil && prev != t {
			prev.release(p)
		}
		a.owners[key] = t
		from := readProperty(target, p)
		t.props = append(t.props, propTween{
			prop: p,
			to:   to,
			tw:   gween.New(float32(from), float32(to), float32(duration), fn),
		})
	}
	t.onSettle = append(t.onSettle, func() { a.forget(t) })
	a.active = append(a.active, t)
	if len(t.props) == 0 {
		t.update(0)
	}
	return t
}

// AnimateToScale tweens target's uniform scale to an absolute value.
func (a *Animator) AnimateToScale(target *Node, scale, duration float64, fn ease.TweenFunc) *Tween {
	return a.AnimateToProperties(target, Props{PropScale: scale}, duration, fn)
}

// Update advances every running tween by dt seconds.
func (a *Animator) Update(dt float64) {
	if len(a.active) == 0 {
		return
	}
	// Callbacks may start new tweens; those begin on the next tick.
	running := append([]*Tween(nil), a.active...)
	for _, t := range running {
		t.update(float32(dt))
	}
	kept := a.active[:0]
	for _, t := range a.active {
		if !t.Done() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(a.active); i++ {
		a.active[i] = nil
	}
	a.active = kept
}

// CancelAll cancels every running tween.
func (a *Animator) CancelAll() {
	for _, t := range append([]*Tween(nil), a.active...) {
		t.Cancel()
	}
	a.active = a.active[:0]
}

func (a *Animator) forget(t *Tween) {
	for key, owner := range a.owners {
		if owner == t {
			delete(a.owners, key)
		}
	}
}

// Join runs fn once every tween has finished or been cancelled.
func Join(fn func(), tweens ...*Tween) {
	pending := 0
	fired := false
	check := func() {
		pending--
		if pending == 0 && !fired {
			fired = true
			fn()
		}
	}
	for _, t := range tweens {
		if t == nil || t.Done() {
			continue
		}
		pending++
		t.onSettle = append(t.onSettle, check)
	}
	if pending == 0 {
		fired = true
		fn()
	}
}

// --- Stamp feedback transitions ---

// HoverIn scales a stamp up slightly from its base scale.
func HoverIn(a *Animator, n *Node, baseScale float64) *Tween {
	return a.AnimateToScale(n, baseScale*HoverScaleFactor, HoverInDuration, EasePower2Out)
}

// HoverOut returns a stamp to its base scale.
func HoverOut(a *Animator, n *Node, baseScale float64) *Tween {
	return a.AnimateToScale(n, baseScale, HoverOutDuration, EasePower2Out)
}

// Press pulses a stamp when it is grabbed.
func Press(a *Animator, n *Node, baseScale float64) *Tween {
	return a.AnimateToScale(n, baseScale*PressScaleFactor, PressDuration, EasePower1Out)
}

// Settle returns a stamp to its base scale after release.
func Settle(a *Animator, n *Node, baseScale float64) *Tween {
	return a.AnimateToScale(n, baseScale, SettleDuration, EasePower2Out)
}
