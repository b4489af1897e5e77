package stampboard

import "math"

// Behavior names one of the viewport's input behaviors that can be paused.
type Behavior uint8

const (
	BehaviorDrag       Behavior = iota // press-drag panning
	BehaviorPinch                      // two-finger pinch zoom (always inert)
	BehaviorWheel                      // wheel zoom (always inert)
	BehaviorDecelerate                 // inertial coasting after a drag
	numBehaviors
)

func (b Behavior) String() string {
	switch b {
	case BehaviorDrag:
		return "drag"
	case BehaviorPinch:
		return "pinch"
	case BehaviorWheel:
		return "wheel"
	case BehaviorDecelerate:
		return "decelerate"
	default:
		return "unknown"
	}
}

const (
	defaultDragFactor = 1.25
	defaultFriction   = 0.965

	// minSpeed is the coasting speed, in world units per millisecond, below
	// which inertia stops.
	minSpeed = 0.01
	// velocityWindowMs is how far back drag samples count toward the release
	// velocity.
	velocityWindowMs = 100
)

// ViewportConfig configures a Viewport.
type ViewportConfig struct {
	WorldWidth  float64
	WorldHeight float64
	// DragFactor multiplies pointer movement while panning.
	DragFactor float64
	// Friction is the fraction of coasting velocity kept per millisecond.
	Friction float64
}

type dragSample struct {
	x, y float64
	t    float64 // ms
}

// Viewport is a pan-only camera over a fixed-size world. Zoom is fixed at 1.
// The camera position is clamped so that the visible rectangle never leaves
// [0, WorldWidth] x [0, WorldHeight].
type Viewport struct {
	// X and Y are the world-space point at the center of the screen.
	X, Y float64

	screenW, screenH float64
	worldW, worldH   float64
	dragFactor       float64
	friction         float64

	paused [numBehaviors]bool

	dragging     bool
	lastX, lastY float64
	samples      []dragSample

	// coasting velocity in world units per millisecond
	velX, velY float64
	clock      float64 // ms

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// NewViewport creates a viewport centered on the world.
func NewViewport(cfg ViewportConfig, screenW, screenH float64) *Viewport {
	if cfg.DragFactor <= 0 {
		cfg.DragFactor = defaultDragFactor
	}
	if cfg.Friction <= 0 || cfg.Friction >= 1 {
		cfg.Friction = defaultFriction
	}
	v := &Viewport{
		worldW:     cfg.WorldWidth,
		worldH:     cfg.WorldHeight,
		dragFactor: cfg.DragFactor,
		friction:   cfg.Friction,
		dirty:      true,
	}
	v.Resize(screenW, screenH)
	v.MoveCenter(cfg.WorldWidth/2, cfg.WorldHeight/2)
	return v
}

// WorldSize returns the fixed world dimensions.
func (v *Viewport) WorldSize() (w, h float64) { return v.worldW, v.worldH }

// ScreenSize returns the current screen dimensions.
func (v *Viewport) ScreenSize() (w, h float64) { return v.screenW, v.screenH }

// Zoom is always 1; pinch and wheel zoom are disabled.
func (v *Viewport) Zoom() float64 { return 1 }

// Pause disables a behavior until Resume is called. Pausing drag ends any
// drag in progress; pausing decelerate freezes coasting in place.
func (v *Viewport) Pause(b Behavior) {
	if b >= numBehaviors {
		return
	}
	v.paused[b] = true
	if b == BehaviorDrag && v.dragging {
		v.dragging = false
		v.samples = v.samples[:0]
	}
}

// Resume re-enables a paused behavior.
func (v *Viewport) Resume(b Behavior) {
	if b >= numBehaviors {
		return
	}
	v.paused[b] = false
}

// Paused reports whether a behavior is paused.
func (v *Viewport) Paused(b Behavior) bool {
	if b >= numBehaviors {
		return false
	}
	return v.paused[b]
}

// Dragging reports whether a pan gesture is in progress.
func (v *Viewport) Dragging() bool { return v.dragging }

// Resize updates the screen size and re-clamps. World content is unchanged.
func (v *Viewport) Resize(screenW, screenH float64) {
	v.screenW = math.Max(1, screenW)
	v.screenH = math.Max(1, screenH)
	v.clamp()
	v.dirty = true
}

// MoveCenter centers the camera on a world point, subject to clamping.
func (v *Viewport) MoveCenter(x, y float64) {
	v.X, v.Y = x, y
	v.clamp()
	v.dirty = true
}

// DragStart begins a pan at a screen point. Returns false when dragging is
// paused.
func (v *Viewport) DragStart(sx, sy float64) bool {
	if v.paused[BehaviorDrag] {
		return false
	}
	v.dragging = true
	v.lastX, v.lastY = sx, sy
	v.velX, v.velY = 0, 0
	v.samples = append(v.samples[:0], dragSample{x: v.X, y: v.Y, t: v.clock})
	return true
}

// DragMove pans by the pointer movement since the last call.
func (v *Viewport) DragMove(sx, sy float64) {
	if !v.dragging || v.paused[BehaviorDrag] {
		return
	}
	dx := (sx - v.lastX) * v.dragFactor
	dy := (sy - v.lastY) * v.dragFactor
	v.lastX, v.lastY = sx, sy
	if dx == 0 && dy == 0 {
		return
	}
	v.X -= dx
	v.Y -= dy
	v.clamp()
	v.dirty = true
	v.samples = append(v.samples, dragSample{x: v.X, y: v.Y, t: v.clock})
}

// DragEnd finishes a pan and, unless decelerate is paused, starts coasting
// with the velocity of the last samples.
func (v *Viewport) DragEnd() {
	if !v.dragging {
		return
	}
	v.dragging = false
	defer func() { v.samples = v.samples[:0] }()
	if v.paused[BehaviorDecelerate] || len(v.samples) < 2 {
		return
	}
	last := v.samples[len(v.samples)-1]
	for _, s := range v.samples {
		if v.clock-s.t > velocityWindowMs {
			continue
		}
		elapsed := v.clock - s.t
		if elapsed <= 0 {
			break
		}
		v.velX = (last.x - s.x) / elapsed
		v.velY = (last.y - s.y) / elapsed
		break
	}
}

// Coasting reports whether inertia is still moving the camera.
func (v *Viewport) Coasting() bool {
	return v.velX != 0 || v.velY != 0
}

// Update advances the viewport clock and inertia by dt seconds.
func (v *Viewport) Update(dt float64) {
	ms := dt * 1000
	v.clock += ms
	if v.dragging || v.paused[BehaviorDecelerate] || !v.Coasting() {
		return
	}
	k := v.friction
	lnk := math.Log(k)
	decay := math.Pow(k, ms)
	// Integral of v*k^t over the step.
	v.X += v.velX / lnk * (decay - 1)
	v.Y += v.velY / lnk * (decay - 1)
	v.velX *= decay
	v.velY *= decay
	if math.Abs(v.velX) < minSpeed {
		v.velX = 0
	}
	if math.Abs(v.velY) < minSpeed {
		v.velY = 0
	}
	prevX, prevY := v.X, v.Y
	v.clamp()
	if v.X != prevX {
		v.velX = 0
	}
	if v.Y != prevY {
		v.velY = 0
	}
	v.dirty = true
}

// clamp restricts the camera center so the visible area stays within the
// world. On an axis where the world is smaller than the screen, the camera
// centers on the world.
func (v *Viewport) clamp() {
	halfW := v.screenW / 2
	halfH := v.screenH / 2

	minX, maxX := halfW, v.worldW-halfW
	minY, maxY := halfH, v.worldH-halfH

	if minX > maxX {
		v.X = v.worldW / 2
	} else {
		v.X = math.Max(minX, math.Min(v.X, maxX))
	}
	if minY > maxY {
		v.Y = v.worldH / 2
	} else {
		v.Y = math.Max(minY, math.Min(v.Y, maxY))
	}
}

// ViewMatrix returns the world-to-screen transform.
//
//	viewMatrix = Translate(screenW/2, screenH/2) * Translate(-X, -Y)
func (v *Viewport) ViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false
	v.viewMatrix = [6]float64{1, 0, 0, 1, v.screenW/2 - v.X, v.screenH/2 - v.Y}
	v.invViewMatrix = invertAffine(v.viewMatrix)
	return v.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(v.ViewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.ViewMatrix()
	return transformPoint(v.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	x0, y0 := v.ScreenToWorld(0, 0)
	return Rect{X: x0, Y: y0, Width: v.screenW, Height: v.screenH}
}
