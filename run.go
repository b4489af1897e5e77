package stampboard

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a resizable window and runs the board until the window closes.
// The board is closed when Run returns.
func Run(b *Board, cfg RunConfig) error {
	if cfg.Width < MinScreenWidth {
		cfg.Width = MinScreenWidth
	}
	if cfg.Height < MinScreenHeight {
		cfg.Height = MinScreenHeight
	}
	if cfg.Title == "" {
		cfg.Title = "stampboard"
	}
	b.ShowFPS = b.ShowFPS || cfg.ShowFPS

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(MinScreenWidth, MinScreenHeight, -1, -1)
	defer b.Close()
	return ebiten.RunGame(b)
}
