package stampboard

import (
	"io/fs"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// maxDeviceScale caps the canvas resolution on high-density displays.
	maxDeviceScale = 2

	MinScreenWidth  = 320
	MinScreenHeight = 240

	backgroundKey  = "bg:"
	stampKeyPrefix = "stamp:"
)

// Board is the top-level game object. It owns the world layer (background
// and stamps, drawn through the viewport), the screen-space overlay layer
// that hosts the modal, the viewport, the animator and the texture loader.
//
// Interactive elements are mounted on the first Layout call that reports a
// screen size; until then Update only collects finished texture loads.
type Board struct {
	cfg Config

	world      *Node
	background *Node
	stampLayer *Node
	overlay    *Node

	viewport *Viewport
	animator *Animator
	stamps   *StampController
	modal    *Modal
	loader   *TextureLoader
	sink     EventSink
	resize   resizeBus

	descs   map[string]int // stamp id -> descriptor index
	input   InputSource
	pointer pointerState
	hitBuf  []*Node

	commands []RenderCommand

	mounted          bool
	screenW, screenH float64
	dpr              float64

	injectQueue     []syntheticEvent
	script          *ScriptRunner
	screenshotQueue []string
	fps             fpsWidget

	// ClearColor fills the screen before the world is drawn.
	ClearColor Color
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ExitWhenScriptDone ends the game loop once an attached script finishes.
	ExitWhenScriptDone bool
}

// NewBoard creates a board and starts loading its textures. Relative urls
// are read from assets, which may be nil when every url is http(s).
func NewBoard(cfg Config, assets fs.FS) *Board {
	cfg.applyDefaults()

	world := NewContainer("world")
	world.Interactable = true
	stampLayer := NewContainer("stamps")
	stampLayer.Interactable = true
	world.AddChild(stampLayer)

	overlay := NewContainer("overlay")
	overlay.Interactable = true
	overlay.Visible = false

	b := &Board{
		cfg:        cfg,
		world:      world,
		stampLayer: stampLayer,
		overlay:    overlay,
		animator:   NewAnimator(),
		loader:     NewTextureLoader(assets, cfg.LoaderConcurrency),
		descs:      make(map[string]int, len(cfg.Stamps)),
		dpr:        1,
		ClearColor: Color{0, 0, 0, 1},

		ScreenshotDir: "screenshots",
	}
	b.viewport = NewViewport(ViewportConfig{
		WorldWidth:  cfg.WorldWidth,
		WorldHeight: cfg.WorldHeight,
		DragFactor:  cfg.DragFactor,
		Friction:    cfg.Friction,
	}, 0, 0)
	b.stamps = newStampController(b, stampLayer)
	b.modal = newModal(b)
	b.input = &ebitenInput{scale: func() float64 { return b.dpr }}

	if cfg.BackgroundURL != "" {
		b.loader.Load(backgroundKey, cfg.BackgroundURL)
	}
	for i, d := range cfg.Stamps {
		if _, dup := b.descs[d.ID]; dup {
			logError("stamp %q listed twice, keeping the first", d.ID)
			continue
		}
		b.descs[d.ID] = i
		b.loader.Load(stampKeyPrefix+d.ID, d.URL)
	}
	return b
}

// Viewport returns the board's camera.
func (b *Board) Viewport() *Viewport { return b.viewport }

// Stamps returns the stamp controller.
func (b *Board) Stamps() *StampController { return b.stamps }

// Modal returns the modal viewer.
func (b *Board) Modal() *Modal { return b.modal }

// Animator returns the board's animator.
func (b *Board) Animator() *Animator { return b.animator }

// World returns the world layer root.
func (b *Board) World() *Node { return b.world }

// Overlay returns the screen-space overlay root.
func (b *Board) Overlay() *Node { return b.overlay }

// Background returns the tiling background node, or nil until its texture
// loads.
func (b *Board) Background() *Node { return b.background }

// Mounted reports whether the board has received a screen size.
func (b *Board) Mounted() bool { return b.mounted }

// ScreenSize returns the logical screen size.
func (b *Board) ScreenSize() (w, h float64) { return b.screenW, b.screenH }

// Loader returns the texture loader.
func (b *Board) Loader() *TextureLoader { return b.loader }

// SetEventSink routes board events to sink. Nil disables events.
func (b *Board) SetEventSink(sink EventSink) { b.sink = sink }

// SetInput replaces the input source. Nil disables real input; injected
// events still run.
func (b *Board) SetInput(in InputSource) { b.input = in }

// Close stops texture loading and cancels running tweens.
func (b *Board) Close() {
	b.loader.Close()
	b.animator.CancelAll()
}

// Update implements ebiten.Game.
func (b *Board) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	b.step(dt)
	if b.ShowFPS {
		b.fps.update(dt)
	}
	if b.ExitWhenScriptDone && b.script != nil && b.script.Done() && len(b.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// step advances the board by dt seconds.
func (b *Board) step(dt float64) {
	b.loader.Poll(b.applyLoad)
	if !b.mounted {
		return
	}
	if b.script != nil {
		b.script.step(b)
	}
	b.processInput()
	b.viewport.Update(dt)
	b.animator.Update(dt)
}

// Draw implements ebiten.Game.
func (b *Board) Draw(screen *ebiten.Image) {
	screen.Fill(b.ClearColor.toRGBA())
	if !b.mounted {
		return
	}
	scale := [6]float64{b.dpr, 0, 0, b.dpr, 0, 0}

	b.buildWorldCommands()
	b.submit(screen, multiplyAffine(scale, b.viewport.ViewMatrix()))

	if b.overlay.Visible {
		b.buildOverlayCommands()
		b.submit(screen, scale)
	}

	b.flushScreenshots(screen)
	if b.ShowFPS {
		b.fps.draw(screen, b.dpr)
	}
}

// Layout implements ebiten.Game. The canvas is the window size times the
// device scale factor, capped at maxDeviceScale.
func (b *Board) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = math.Min(m.DeviceScaleFactor(), maxDeviceScale)
	}
	if dpr <= 0 {
		dpr = 1
	}
	b.dpr = dpr
	b.setScreen(float64(outsideWidth), float64(outsideHeight))
	return int(math.Ceil(float64(outsideWidth) * dpr)), int(math.Ceil(float64(outsideHeight) * dpr))
}

// setScreen applies a logical screen size, mounting the board on the first
// call. Repeating the current size is a no-op.
func (b *Board) setScreen(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	if b.mounted && w == b.screenW && h == b.screenH {
		return
	}
	b.screenW, b.screenH = w, h
	b.viewport.Resize(w, h)
	if !b.mounted {
		b.mounted = true
		b.viewport.MoveCenter(b.cfg.WorldWidth/2, b.cfg.WorldHeight/2)
		logDebug("mounted at %.0fx%.0f (scale %.2f)", w, h, b.dpr)
		return
	}
	b.resize.publish(w, h)
}

// applyLoad receives one finished texture load.
func (b *Board) applyLoad(key string, tex *Texture, err error) {
	if key == backgroundKey {
		if err != nil {
			logError("background %s: %v", b.cfg.BackgroundURL, err)
			return
		}
		b.setBackground(tex)
		return
	}

	id := key[len(stampKeyPrefix):]
	i, ok := b.descs[id]
	if !ok {
		return
	}
	d := b.cfg.Stamps[i]
	if err != nil {
		logError("stamp %q: %v", id, err)
		b.emit(EventStampLoadFailed, id, d.X, d.Y)
		return
	}
	b.stamps.Attach(d, i, tex)
	b.emit(EventStampLoaded, id, d.X, d.Y)
}

func (b *Board) setBackground(tex *Texture) {
	if b.background != nil {
		b.background.Dispose()
	}
	bg := NewTilingSprite("background", tex, b.cfg.WorldWidth, b.cfg.WorldHeight, b.cfg.BackgroundTileScale)
	bg.Alpha = b.cfg.BackgroundAlpha
	b.world.AddChildAt(bg, 0)
	b.background = bg
}
