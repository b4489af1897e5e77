package stampboard

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget shows FPS and TPS in the top-left corner, refreshed about twice
// a second.
type fpsWidget struct {
	img   *ebiten.Image
	since float64
}

func (w *fpsWidget) update(dt float64) {
	if w.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		w.img = ebiten.NewImage(100, 32)
		w.since = 0.5
	}
	w.since += dt
	if w.since < 0.5 {
		return
	}
	w.since = 0
	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (w *fpsWidget) draw(screen *ebiten.Image, scale float64) {
	if w.img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(w.img, &op)
}
