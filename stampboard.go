package stampboard

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is applied to a draw call.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorFromHex builds an opaque Color from a 0xRRGGBB value.
func ColorFromHex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * clamp01(c.A) * 255),
		G: uint8(clamp01(c.G) * clamp01(c.A) * 255),
		B: uint8(clamp01(c.B) * clamp01(c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used for solid color sprites such as the
// modal backdrop.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(color.White)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders a Texture, or WhitePixel when none is set
	NodeTypeTiling                    // repeats a Texture over TilingWidth x TilingHeight
)

// EventType identifies a kind of pointer event delivered to a node.
type EventType uint8

const (
	EventPointerOver      EventType = iota // pointer entered the node
	EventPointerOut                        // pointer left the node
	EventPointerDown                       // primary button pressed over the node
	EventPointerMove                       // pointer moved while over or captured by the node
	EventPointerUp                         // primary button released over the node
	EventPointerUpOutside                  // released elsewhere after pressing on the node
)

func (e EventType) String() string {
	switch e {
	case EventPointerOver:
		return "pointerover"
	case EventPointerOut:
		return "pointerout"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerMove:
		return "pointermove"
	case EventPointerUp:
		return "pointerup"
	case EventPointerUpOutside:
		return "pointerupoutside"
	default:
		return "unknown"
	}
}
