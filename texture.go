package stampboard

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a drawable image with its pixel dimensions. Width and Height are
// kept separately from the image so that layout and hit testing never need to
// touch the GPU-side image.
type Texture struct {
	img    *ebiten.Image
	width  int
	height int
	bytes  int64
}

// NewTexture wraps an existing ebiten image.
func NewTexture(img *ebiten.Image) *Texture {
	b := img.Bounds()
	return &Texture{img: img, width: b.Dx(), height: b.Dy(), bytes: int64(4 * b.Dx() * b.Dy())}
}

// newTextureFromImage uploads a decoded image. Must run on the update thread.
func newTextureFromImage(src image.Image) *Texture {
	return NewTexture(ebiten.NewImageFromImage(src))
}

// Image returns the underlying ebiten image. May be nil for size-only textures.
func (t *Texture) Image() *ebiten.Image { return t.img }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Bytes returns the approximate GPU memory used by the texture.
func (t *Texture) Bytes() int64 { return t.bytes }
