package stampboard

import (
	"testing"
)

// runAnimator advances a for the given seconds in 60 Hz steps.
func runAnimator(a *Animator, seconds float64) {
	const dt = 1.0 / 60
	for t := 0.0; t < seconds; t += dt {
		a.Update(dt)
	}
}

func TestAnimateToScaleReachesTarget(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("s", nil)
	tw := a.AnimateToScale(n, 2, 0.2, EasePower2Out)
	a.Update(0.1)
	if n.ScaleX <= 1 || n.ScaleX >= 2 {
		t.Errorf("mid-tween scale = %v, want between 1 and 2", n.ScaleX)
	}
	if n.ScaleX != n.ScaleY {
		t.Error("scale should stay uniform")
	}
	runAnimator(a, 0.2)
	if n.ScaleX != 2 || n.ScaleY != 2 {
		t.Errorf("scale = (%v, %v), want exactly 2", n.ScaleX, n.ScaleY)
	}
	if !tw.Done() || tw.Cancelled() {
		t.Error("tween should be finished, not cancelled")
	}
	if a.Len() != 0 {
		t.Errorf("animator still holds %d tweens", a.Len())
	}
}

func TestAnimateToPropertiesTogether(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("s", nil)
	n.SetPosition(10, 10)
	n.SetAngle(45)
	a.AnimateToProperties(n, Props{PropX: 100, PropY: -50, PropAngle: 0, PropScale: 0.5, PropAlpha: 0.25}, 0.32, EasePower2Out)
	runAnimator(a, 0.4)
	assertNear(t, "X", n.X, 100)
	assertNear(t, "Y", n.Y, -50)
	assertNear(t, "Angle", n.Angle(), 0)
	assertNear(t, "Scale", n.ScaleX, 0.5)
	assertNear(t, "Alpha", n.Alpha, 0.25)
}

func TestOnCompleteOnlyOnFinish(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("s", nil)

	finished := 0
	a.AnimateToScale(n, 2, 0.1, nil).OnComplete(func() { finished++ })
	runAnimator(a, 0.2)
	if finished != 1 {
		t.Errorf("OnComplete ran %d times, want 1", finished)
	}

	cancelled := 0
	tw := a.AnimateToScale(n, 3, 0.1, nil).OnComplete(func() { cancelled++ })
	tw.Cancel()
	runAnimator(a, 0.2)
	if cancelled != 0 {
		t.Error("OnComplete should not run for a cancelled tween")
	}
	if !tw.Cancelled() {
		t.Error("tween should report cancelled")
	}
}

func TestSupersedeSameProperty(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("s", nil)
	first := a.AnimateToScale(n, 2, 0.5, nil)
	a.Update(0.1)
	second := a.AnimateToScale(n, 1, 0.2, nil)

	if !first.Cancelled() {
		t.Error("first tween should be cancelled once its only property is taken")
	}
	runAnimator(a, 0.3)
	if n.ScaleX != 1 {
		t.Errorf("scale = %v, want 1 (second tween wins)", n.ScaleX)
	}
	if !second.Done() || second.Cancelled() {
		t.Error("second tween should finish")
	}
}

func TestSupersedeKeepsOtherProperties(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("s", nil)
	first := a.AnimateToProperties(n, Props{PropX: 100, PropScale: 2}, 0.2, nil)
	a.AnimateToScale(n, 0.5, 0.1, nil)
	if first.Cancelled() {
		t.Error("first tween still owns X and should keep running")
	}
	runAnimator(a, 0.3)
	assertNear(t, "X", n.X, 100)
	assertNear(t, "Scale", n.ScaleX, 0.5)
}

func TestTweenCancelledWhenTargetDisposed(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("s", nil)
	tw := a.AnimateToScale(n, 2, 0.5, nil)
	n.Dispose()
	a.Update(0.1)
	if !tw.Cancelled() {
		t.Error("tween on a disposed node should cancel")
	}
}

func TestJoin(t *testing.T) {
	a := NewAnimator()
	n1 := NewSprite("a", nil)
	n2 := NewSprite("b", nil)
	t1 := a.AnimateToScale(n1, 2, 0.1, nil)
	t2 := a.AnimateToScale(n2, 2, 0.3, nil)

	ran := 0
	Join(func() { ran++ }, t1, t2)
	runAnimator(a, 0.15)
	if ran != 0 {
		t.Error("Join should wait for the slower tween")
	}
	runAnimator(a, 0.3)
	if ran != 1 {
		t.Errorf("Join ran %d times, want 1", ran)
	}
}

func TestJoinCountsCancelled(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("a", nil)
	t1 := a.AnimateToScale(n, 2, 1, nil)
	ran := false
	Join(func() { ran = true }, t1)
	t1.Cancel()
	if !ran {
		t.Error("Join should run once its tween is cancelled")
	}
}

func TestJoinImmediateWhenNothingPending(t *testing.T) {
	ran := false
	Join(func() { ran = true }, nil)
	if !ran {
		t.Error("Join with no pending tweens should run immediately")
	}
}

func TestStampTransitions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*Animator, *Node, float64) *Tween
		want float64
		dur  float64
	}{
		{"hover in", HoverIn, 0.3 * HoverScaleFactor, HoverInDuration},
		{"hover out", HoverOut, 0.3, HoverOutDuration},
		{"press", Press, 0.3 * PressScaleFactor, PressDuration},
		{"settle", Settle, 0.3, SettleDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnimator()
			n := NewSprite("s", nil)
			n.SetScale(0.5)
			tw := tt.fn(a, n, 0.3)
			a.Update(tt.dur / 2)
			if tw.Done() {
				t.Fatal("tween finished too early")
			}
			a.Update(tt.dur/2 + 0.01)
			if !tw.Done() {
				t.Fatal("tween should be done after its duration")
			}
			assertNear(t, "scale", n.ScaleX, tt.want)
		})
	}
}

func TestCancelAll(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("s", nil)
	tw := a.AnimateToScale(n, 2, 1, nil)
	a.CancelAll()
	if !tw.Cancelled() || a.Len() != 0 {
		t.Error("CancelAll should cancel and drop every tween")
	}
}
