package stampboard

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearEps(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, eps)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  [6]float64
	}{
		{"identity", func(n *Node) {}, [6]float64{1, 0, 0, 1, 0, 0}},
		{"translation", func(n *Node) { n.X, n.Y = 10, 20 }, [6]float64{1, 0, 0, 1, 10, 20}},
		{"scale", func(n *Node) { n.ScaleX, n.ScaleY = 2, 3 }, [6]float64{2, 0, 0, 3, 0, 0}},
		// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
		{"rot90", func(n *Node) { n.Rotation = math.Pi / 2 }, [6]float64{0, 1, -1, 0, 0, 0}},
		{"pivot", func(n *Node) { n.X, n.Y = 100, 50; n.PivotX, n.PivotY = 10, 20 }, [6]float64{1, 0, 0, 1, 90, 30}},
		{"pivot scaled", func(n *Node) { n.X, n.Y = 100, 50; n.PivotX, n.PivotY = 10, 20; n.ScaleX, n.ScaleY = 2, 2 }, [6]float64{2, 0, 0, 2, 80, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("test")
			tt.setup(n)
			assertMatrix(t, tt.name, computeLocalTransform(n), tt.want)
		})
	}
}

func TestPivotStaysPutUnderRotation(t *testing.T) {
	n := NewSprite("s", &Texture{width: 200, height: 100})
	n.SetAnchorCenter()
	n.SetPosition(500, 300)
	for _, deg := range []float64{0, 33, 90, 180, -57} {
		n.SetAngle(deg)
		n.SetScale(0.3)
		updateWorldTransform(n, identityTransform, 1, false)
		x, y := n.LocalToWorld(100, 50)
		assertNear(t, "center x", x, 500)
		assertNear(t, "center y", y, 300)
	}
}

// --- matrix helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 5, 7}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 5, 7}
	assertMatrix(t, "m*inv", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertSingular(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

func TestUniformScale(t *testing.T) {
	n := NewContainer("n")
	n.SetScale(0.3)
	n.SetRotation(0.7)
	assertNear(t, "scale", uniformScale(computeLocalTransform(n)), 0.3)
}

// --- world transform ---

func TestWorldTransformInheritsParent(t *testing.T) {
	root := NewContainer("root")
	root.SetPosition(100, 0)
	child := NewContainer("child")
	child.SetPosition(0, 50)
	root.AddChild(child)

	updateWorldTransform(root, identityTransform, 1, false)
	assertMatrix(t, "child", child.WorldTransform(), [6]float64{1, 0, 0, 1, 100, 50})

	root.SetPosition(200, 0)
	updateWorldTransform(root, identityTransform, 1, false)
	assertMatrix(t, "child after move", child.WorldTransform(), [6]float64{1, 0, 0, 1, 200, 50})
}

func TestWorldAlphaMultiplies(t *testing.T) {
	root := NewContainer("root")
	root.SetAlpha(0.5)
	child := NewContainer("child")
	child.SetAlpha(0.5)
	root.AddChild(child)
	updateWorldTransform(root, identityTransform, 1, false)
	assertNear(t, "worldAlpha", child.worldAlpha, 0.25)
}

func TestRefreshTransformFromLeaf(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	mid.SetPosition(10, 20)
	leaf.SetPosition(1, 2)

	refreshTransform(leaf)
	assertMatrix(t, "leaf", leaf.WorldTransform(), [6]float64{1, 0, 0, 1, 11, 22})
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(30, 40)
	n.SetRotation(0.4)
	n.SetScale(2)
	updateWorldTransform(n, identityTransform, 1, false)

	wx, wy := n.LocalToWorld(7, -3)
	lx, ly := n.WorldToLocal(wx, wy)
	assertNear(t, "lx", lx, 7)
	assertNear(t, "ly", ly, -3)
}

func TestAngleDegrees(t *testing.T) {
	n := NewContainer("n")
	n.SetAngle(90)
	assertNear(t, "rotation", n.Rotation, math.Pi/2)
	assertNear(t, "angle", n.Angle(), 90)
}
