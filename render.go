package stampboard

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite CommandType = iota // one sprite
	CommandTile                      // one repetition of a tiling sprite
)

// RenderCommand is a single draw emitted during traversal. Transform is in
// layer space; the layer's view matrix is applied when the command is
// submitted.
type RenderCommand struct {
	Type      CommandType
	Node      *Node
	Transform [6]float64
	Image     *ebiten.Image
	// SrcW and SrcH crop the image; zero means the full image.
	SrcW, SrcH int
	Color      Color
}

// traverse walks the tree in painter order, updating transforms and emitting
// commands for visible leaves. cull, when non-nil, is the layer-space
// rectangle on screen; leaves entirely outside it are skipped.
func (b *Board) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, cull *Rect) {
	if !n.Visible {
		return
	}
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	tint := n.Color
	tint.A *= n.worldAlpha

	switch n.Type {
	case NodeTypeSprite:
		if cull != nil && shouldCull(n, *cull) {
			break
		}
		img := WhitePixel
		if n.Texture != nil {
			img = n.Texture.Image()
		}
		if tint.A > 0 {
			b.commands = append(b.commands, RenderCommand{
				Type:      CommandSprite,
				Node:      n,
				Transform: n.worldTransform,
				Image:     img,
				Color:     tint,
			})
		}
	case NodeTypeTiling:
		if n.Texture != nil && tint.A > 0 {
			b.emitTiles(n, tint, cull)
		}
	}

	for _, child := range n.paintOrder() {
		b.traverse(child, n.worldTransform, n.worldAlpha, recompute, cull)
	}
}

// emitTiles emits one command per repetition of a tiling sprite's texture
// that intersects cull. Edge tiles are cropped to the tiling area.
func (b *Board) emitTiles(n *Node, tint Color, cull *Rect) {
	tw, th := float64(n.Texture.Width()), float64(n.Texture.Height())
	ts := n.TileScale
	if ts <= 0 {
		ts = 1
	}
	stepX, stepY := tw*ts, th*ts
	if stepX <= 0 || stepY <= 0 {
		return
	}

	x0, y0, x1, y1 := 0.0, 0.0, n.TilingWidth, n.TilingHeight
	if cull != nil {
		inv := invertAffine(n.worldTransform)
		lb := transformRect(inv, *cull)
		x0, y0 = math.Max(x0, lb.X), math.Max(y0, lb.Y)
		x1, y1 = math.Min(x1, lb.X+lb.Width), math.Min(y1, lb.Y+lb.Height)
	}
	if x1 <= x0 || y1 <= y0 {
		return
	}

	i0, i1 := int(math.Floor(x0/stepX)), int(math.Ceil(x1/stepX))
	j0, j1 := int(math.Floor(y0/stepY)), int(math.Ceil(y1/stepY))
	for j := j0; j < j1; j++ {
		oy := float64(j) * stepY
		srcH := 0
		if rem := n.TilingHeight - oy; rem < stepY {
			srcH = int(math.Ceil(rem / ts))
		}
		for i := i0; i < i1; i++ {
			ox := float64(i) * stepX
			srcW := 0
			if rem := n.TilingWidth - ox; rem < stepX {
				srcW = int(math.Ceil(rem / ts))
			}
			b.commands = append(b.commands, RenderCommand{
				Type:      CommandTile,
				Node:      n,
				Transform: multiplyAffine(n.worldTransform, [6]float64{ts, 0, 0, ts, ox, oy}),
				Image:     n.Texture.Image(),
				SrcW:      srcW,
				SrcH:      srcH,
				Color:     tint,
			})
		}
	}
}

// shouldCull reports whether a sprite's layer-space AABB misses bounds.
func shouldCull(n *Node, bounds Rect) bool {
	w, h := nodeDimensions(n)
	aabb := transformRect(n.worldTransform, Rect{Width: w, Height: h})
	return !aabb.Intersects(bounds)
}

// transformRect returns the axis-aligned bounds of r under m.
func transformRect(m [6]float64, r Rect) Rect {
	xs := [4]float64{r.X, r.X + r.Width, r.X, r.X + r.Width}
	ys := [4]float64{r.Y, r.Y, r.Y + r.Height, r.Y + r.Height}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range xs {
		x, y := transformPoint(m, xs[i], ys[i])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// commandGeoM builds the GeoM for a command drawn through view.
func commandGeoM(t, view [6]float64) ebiten.GeoM {
	m := multiplyAffine(view, t)
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// submit draws the queued commands through view.
func (b *Board) submit(target *ebiten.Image, view [6]float64) {
	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterLinear
	for i := range b.commands {
		cmd := &b.commands[i]
		img := cmd.Image
		if img == nil {
			continue
		}
		if cmd.SrcW > 0 || cmd.SrcH > 0 {
			bounds := img.Bounds()
			w, h := bounds.Dx(), bounds.Dy()
			if cmd.SrcW > 0 {
				w = cmd.SrcW
			}
			if cmd.SrcH > 0 {
				h = cmd.SrcH
			}
			img = img.SubImage(image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+w, bounds.Min.Y+h)).(*ebiten.Image)
		}
		op.GeoM = commandGeoM(cmd.Transform, view)
		op.ColorScale.Reset()
		a := float32(cmd.Color.A)
		op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
		target.DrawImage(img, &op)
	}
}

// buildWorldCommands fills the command buffer for the world layer, culled to
// the viewport.
func (b *Board) buildWorldCommands() {
	b.commands = b.commands[:0]
	bounds := b.viewport.VisibleBounds()
	b.traverse(b.world, identityTransform, 1, false, &bounds)
}

// buildOverlayCommands fills the command buffer for the overlay layer.
func (b *Board) buildOverlayCommands() {
	b.commands = b.commands[:0]
	b.traverse(b.overlay, identityTransform, 1, false, nil)
}
