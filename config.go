package stampboard

// Board defaults.
const (
	DefaultWorldWidth          = 8000
	DefaultWorldHeight         = 6000
	DefaultOverlayAlpha        = 1.0
	DefaultBackgroundURL       = "/bg/bgtexture.png"
	DefaultBackgroundAlpha     = 0.3
	DefaultBackgroundTileScale = 0.2

	defaultOverlayColor = 0x17181C
)

// Config describes a board. Zero fields take the defaults from
// DefaultConfig when the board is created.
type Config struct {
	WorldWidth  float64
	WorldHeight float64

	OverlayColor Color
	OverlayAlpha float64

	DragFactor float64
	Friction   float64

	// BackgroundURL is tiled over the whole world. Empty disables the
	// background.
	BackgroundURL       string
	BackgroundAlpha     float64
	BackgroundTileScale float64

	LoaderConcurrency int

	Stamps []StampDescriptor
}

// DefaultConfig returns a board config with no stamps.
func DefaultConfig() Config {
	return Config{
		WorldWidth:          DefaultWorldWidth,
		WorldHeight:         DefaultWorldHeight,
		OverlayColor:        ColorFromHex(defaultOverlayColor),
		OverlayAlpha:        DefaultOverlayAlpha,
		DragFactor:          defaultDragFactor,
		Friction:            defaultFriction,
		BackgroundURL:       DefaultBackgroundURL,
		BackgroundAlpha:     DefaultBackgroundAlpha,
		BackgroundTileScale: DefaultBackgroundTileScale,
		LoaderConcurrency:   defaultLoaderConcurrency,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.WorldWidth <= 0 {
		c.WorldWidth = d.WorldWidth
	}
	if c.WorldHeight <= 0 {
		c.WorldHeight = d.WorldHeight
	}
	if c.OverlayColor == (Color{}) {
		c.OverlayColor = d.OverlayColor
	}
	if c.OverlayAlpha <= 0 || c.OverlayAlpha > 1 {
		c.OverlayAlpha = d.OverlayAlpha
	}
	if c.DragFactor <= 0 {
		c.DragFactor = d.DragFactor
	}
	if c.Friction <= 0 || c.Friction >= 1 {
		c.Friction = d.Friction
	}
	if c.BackgroundAlpha <= 0 {
		c.BackgroundAlpha = d.BackgroundAlpha
	}
	if c.BackgroundTileScale <= 0 {
		c.BackgroundTileScale = d.BackgroundTileScale
	}
	if c.LoaderConcurrency <= 0 {
		c.LoaderConcurrency = d.LoaderConcurrency
	}
}
