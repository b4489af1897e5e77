// Package manifest loads board configuration and stamp lists from YAML.
//
// Manifest locations (priority order):
//  1. $STAMPBOARD_MANIFEST
//  2. ./stampboard.yaml
//
// A manifest looks like:
//
//	world: {width: 8000, height: 6000}
//	overlay: {color: "#17181C", alpha: 1}
//	background: {url: /bg/bgtexture.png}
//	stamps:
//	  - {id: rose, url: stamps/1.png, x: 4000, y: 3000, scale: 0.3, rotation: 0.2}
package manifest

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/stampboard"
)

const (
	envPath     = "STAMPBOARD_MANIFEST"
	defaultPath = "stampboard.yaml"
)

var (
	// ErrDuplicateID is returned when two stamps share an id.
	ErrDuplicateID = errors.New("duplicate stamp id")
	// ErrInvalidScale is returned for a stamp with a non-positive scale.
	ErrInvalidScale = errors.New("stamp scale must be positive")
)

// Config is the YAML form of a board.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Overlay    OverlayConfig    `yaml:"overlay"`
	Viewport   ViewportConfig   `yaml:"viewport"`
	Background BackgroundConfig `yaml:"background"`
	Loader     LoaderConfig     `yaml:"loader"`
	Stamps     []Stamp          `yaml:"stamps"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type OverlayConfig struct {
	Color string  `yaml:"color"`
	Alpha float64 `yaml:"alpha"`
}

type ViewportConfig struct {
	DragFactor float64 `yaml:"drag_factor"`
	Friction   float64 `yaml:"friction"`
}

type BackgroundConfig struct {
	URL       string  `yaml:"url"`
	Alpha     float64 `yaml:"alpha"`
	TileScale float64 `yaml:"tile_scale"`
	// Disabled turns the background off even when URL is set.
	Disabled bool `yaml:"disabled"`
}

type LoaderConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// Stamp is one manifest entry. Rotation is in radians.
type Stamp struct {
	ID       string  `yaml:"id"`
	URL      string  `yaml:"url"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Scale    float64 `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`
}

// Load finds and loads the manifest, or returns defaults if none is found.
// The second return value is the path that was read, if any.
func Load() (*Config, string, error) {
	path := FindPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// FindPath returns the first manifest location that exists, or "".
func FindPath() string {
	if p := os.Getenv(envPath); p != "" {
		return p
	}
	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath
	}
	return ""
}

// LoadFromPath loads a manifest from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a manifest.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns a manifest with board defaults and no stamps.
func DefaultConfig() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// applyDefaults fills in missing values and gives id-less stamps a uuid.
func (c *Config) applyDefaults() {
	d := stampboard.DefaultConfig()
	if c.World.Width <= 0 {
		c.World.Width = d.WorldWidth
	}
	if c.World.Height <= 0 {
		c.World.Height = d.WorldHeight
	}
	if c.Overlay.Color == "" {
		c.Overlay.Color = "#17181C"
	}
	if c.Overlay.Alpha <= 0 {
		c.Overlay.Alpha = d.OverlayAlpha
	}
	if c.Viewport.DragFactor <= 0 {
		c.Viewport.DragFactor = d.DragFactor
	}
	if c.Viewport.Friction <= 0 {
		c.Viewport.Friction = d.Friction
	}
	if c.Background.URL == "" {
		c.Background.URL = d.BackgroundURL
	}
	if c.Background.Alpha <= 0 {
		c.Background.Alpha = d.BackgroundAlpha
	}
	if c.Background.TileScale <= 0 {
		c.Background.TileScale = d.BackgroundTileScale
	}
	if c.Loader.Concurrency <= 0 {
		c.Loader.Concurrency = d.LoaderConcurrency
	}
	for i := range c.Stamps {
		if c.Stamps[i].ID == "" {
			c.Stamps[i].ID = uuid.NewString()
		}
	}
}

// Validate checks stamp ids, scales and the overlay color.
func (c *Config) Validate() error {
	if _, err := ParseHexColor(c.Overlay.Color); err != nil {
		return fmt.Errorf("overlay color: %w", err)
	}
	if c.Overlay.Alpha > 1 {
		return fmt.Errorf("overlay alpha %v out of range [0, 1]", c.Overlay.Alpha)
	}
	if c.Viewport.Friction >= 1 {
		return fmt.Errorf("viewport friction %v must be below 1", c.Viewport.Friction)
	}
	seen := make(map[string]int, len(c.Stamps))
	for i, s := range c.Stamps {
		if j, ok := seen[s.ID]; ok {
			return fmt.Errorf("stamp %d (%q) and stamp %d: %w", j, s.ID, i, ErrDuplicateID)
		}
		seen[s.ID] = i
		if s.Scale <= 0 {
			return fmt.Errorf("stamp %q: %w", s.ID, ErrInvalidScale)
		}
		if s.URL == "" {
			return fmt.Errorf("stamp %q: missing url", s.ID)
		}
	}
	return nil
}

// Board converts the manifest into a board config. The manifest must have
// passed Validate.
func (c *Config) Board() stampboard.Config {
	color, _ := ParseHexColor(c.Overlay.Color)
	bc := stampboard.Config{
		WorldWidth:          c.World.Width,
		WorldHeight:         c.World.Height,
		OverlayColor:        color,
		OverlayAlpha:        c.Overlay.Alpha,
		DragFactor:          c.Viewport.DragFactor,
		Friction:            c.Viewport.Friction,
		BackgroundURL:       c.Background.URL,
		BackgroundAlpha:     c.Background.Alpha,
		BackgroundTileScale: c.Background.TileScale,
		LoaderConcurrency:   c.Loader.Concurrency,
		Stamps:              make([]stampboard.StampDescriptor, len(c.Stamps)),
	}
	if c.Background.Disabled {
		bc.BackgroundURL = ""
	}
	for i, s := range c.Stamps {
		bc.Stamps[i] = stampboard.StampDescriptor{
			ID:       s.ID,
			URL:      s.URL,
			X:        s.X,
			Y:        s.Y,
			Scale:    s.Scale,
			Rotation: s.Rotation,
		}
	}
	return bc
}

// ParseHexColor parses "#RRGGBB", "RRGGBB" or "0xRRGGBB".
func ParseHexColor(s string) (stampboard.Color, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(h) != 6 {
		return stampboard.Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return stampboard.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return stampboard.ColorFromHex(uint32(v)), nil
}

// Demo stamp placement.
const (
	DemoStampCount = 9
	demoMinX       = 3200
	demoMaxX       = 4800
	demoMinY       = 2400
	demoMaxY       = 3600
	demoMinScale   = 0.28
	demoMaxScale   = 0.32
	demoMaxRot     = 1
)

// Random appends n demo stamps scattered around the middle of the default
// world, with urls stamps/1.png through stamps/<n>.png.
func (c *Config) Random(n int, rng *rand.Rand) {
	for i := 1; i <= n; i++ {
		c.Stamps = append(c.Stamps, Stamp{
			ID:       strconv.Itoa(i),
			URL:      fmt.Sprintf("stamps/%d.png", i),
			X:        demoMinX + rng.Float64()*(demoMaxX-demoMinX),
			Y:        demoMinY + rng.Float64()*(demoMaxY-demoMinY),
			Scale:    demoMinScale + rng.Float64()*(demoMaxScale-demoMinScale),
			Rotation: (rng.Float64()*2 - 1) * demoMaxRot,
		})
	}
}

// Demo returns the default board with DemoStampCount random stamps.
func Demo(seed int64) *Config {
	cfg := DefaultConfig()
	cfg.Random(DemoStampCount, rand.New(rand.NewSource(seed)))
	return cfg
}
