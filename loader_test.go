package stampboard

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// sizeOnlyTexture keeps image dimensions without uploading to the GPU.
func sizeOnlyTexture(img image.Image) *Texture {
	bd := img.Bounds()
	return &Texture{width: bd.Dx(), height: bd.Dy()}
}

type loadOutcome struct {
	tex *Texture
	err error
}

func newTestLoader(t *testing.T, assets fs.FS) *TextureLoader {
	t.Helper()
	l := NewTextureLoader(assets, 2)
	l.makeTexture = sizeOnlyTexture
	t.Cleanup(l.Close)
	return l
}

func drain(l *TextureLoader) map[string]loadOutcome {
	l.Wait()
	out := make(map[string]loadOutcome)
	l.Poll(func(key string, tex *Texture, err error) {
		out[key] = loadOutcome{tex, err}
	})
	return out
}

func TestLoaderAssets(t *testing.T) {
	assets := fstest.MapFS{
		"img/a.png":   {Data: pngBytes(t, 4, 2)},
		"img/bad.png": {Data: []byte("not an image")},
	}
	l := newTestLoader(t, assets)
	l.Load("abs", "/img/a.png")
	l.Load("rel", "img/a.png")
	l.Load("dots", "/img/../img/a.png")
	l.Load("missing", "/img/nope.png")
	l.Load("bad", "/img/bad.png")
	if l.Pending() != 5 {
		t.Fatalf("Pending() = %d, want 5", l.Pending())
	}

	got := drain(l)
	for _, key := range []string{"abs", "rel", "dots"} {
		r := got[key]
		if r.err != nil {
			t.Errorf("%s: %v", key, r.err)
			continue
		}
		if r.tex.Width() != 4 || r.tex.Height() != 2 {
			t.Errorf("%s: size %dx%d, want 4x2", key, r.tex.Width(), r.tex.Height())
		}
	}
	if err := got["missing"].err; !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing: err = %v, want fs.ErrNotExist", err)
	}
	if got["bad"].err == nil {
		t.Error("bad: expected a decode error")
	}
	if l.Pending() != 0 {
		t.Errorf("Pending() = %d after Poll, want 0", l.Pending())
	}
}

func TestLoaderNoAssets(t *testing.T) {
	l := newTestLoader(t, nil)
	l.Load("a", "a.png")
	if got := drain(l); got["a"].err == nil {
		t.Error("expected an error without an asset directory")
	}
}

func TestLoaderHTTP(t *testing.T) {
	img := pngBytes(t, 3, 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}))
	defer srv.Close()

	l := newTestLoader(t, nil)
	l.Load("ok", srv.URL+"/ok.png")
	l.Load("gone", srv.URL+"/gone.png")
	got := drain(l)
	if r := got["ok"]; r.err != nil || r.tex.Width() != 3 || r.tex.Height() != 5 {
		t.Errorf("ok: %+v", r)
	}
	if got["gone"].err == nil {
		t.Error("gone: expected an error for a 404")
	}
}

func TestLoaderPollNonBlocking(t *testing.T) {
	l := newTestLoader(t, fstest.MapFS{})
	if n := l.Poll(func(string, *Texture, error) { t.Error("nothing to deliver") }); n != 0 {
		t.Errorf("Poll() = %d, want 0", n)
	}
}

func TestLoaderCloseDiscards(t *testing.T) {
	l := newTestLoader(t, fstest.MapFS{"a.png": {Data: pngBytes(t, 1, 1)}})
	l.Load("a", "a.png")
	l.Close()
	l.Wait()
	if n := l.Poll(func(string, *Texture, error) { t.Error("closed loader delivered a result") }); n != 0 {
		t.Errorf("Poll() = %d after Close, want 0", n)
	}
	l.Load("b", "a.png")
	if l.Pending() != 0 {
		t.Error("Load after Close should be ignored")
	}
}

func TestBoardAttachesLoadedStamps(t *testing.T) {
	assets := fstest.MapFS{
		"stamps/1.png":     {Data: pngBytes(t, 40, 20)},
		"stamps/2.png":     {Data: pngBytes(t, 30, 30)},
		"stamps/3.png":     {Data: pngBytes(t, 10, 50)},
		"bg/bgtexture.png": {Data: pngBytes(t, 16, 16)},
	}
	cfg := DefaultConfig()
	cfg.Stamps = []StampDescriptor{
		{ID: "one", URL: "/stamps/1.png", X: 100, Y: 100, Scale: 0.5},
		{ID: "3", URL: "/stamps/none.png", X: 200, Y: 200, Scale: 0.5},
		{ID: "two", URL: "/stamps/2.png", X: 300, Y: 300, Scale: 0.5},
		{ID: "one", URL: "/stamps/3.png", X: 400, Y: 400, Scale: 0.5},
		{ID: "three", URL: "/stamps/3.png", X: 500, Y: 500, Scale: 0.5},
	}
	b := NewBoard(cfg, assets)
	t.Cleanup(b.Close)
	b.loader.makeTexture = sizeOnlyTexture
	log := &eventLog{}
	b.SetEventSink(log)

	b.loader.Wait()
	steps(b, 1)

	if log.count(EventStampLoaded) != 3 || log.count(EventStampLoadFailed) != 1 {
		t.Fatalf("events = %+v", log.events)
	}
	if b.Stamps().Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Stamps().Len())
	}
	order := b.stampLayer.Children()
	for i, id := range []string{"one", "two", "three"} {
		if order[i] != b.Stamps().Node(id) {
			t.Errorf("child %d is not %q", i, id)
		}
	}
	if tex := b.Stamps().Texture("one"); tex.Width() != 40 {
		t.Error("a duplicate id should not replace the first stamp")
	}
	if b.Stamps().Node("3") != nil {
		t.Error("failed stamp should be omitted")
	}

	bg := b.Background()
	if bg == nil {
		t.Fatal("background should be attached")
	}
	if bg.Alpha != DefaultBackgroundAlpha || bg.TileScale != DefaultBackgroundTileScale {
		t.Errorf("background alpha %v tile scale %v", bg.Alpha, bg.TileScale)
	}
	if bg.TilingWidth != DefaultWorldWidth || bg.TilingHeight != DefaultWorldHeight {
		t.Errorf("background covers %vx%v", bg.TilingWidth, bg.TilingHeight)
	}
	if b.Mounted() {
		t.Error("loading should not mount the board")
	}
}

func TestBoardMissingBackground(t *testing.T) {
	b := NewBoard(DefaultConfig(), fstest.MapFS{})
	t.Cleanup(b.Close)
	b.loader.makeTexture = sizeOnlyTexture
	b.loader.Wait()
	steps(b, 1)
	if b.Background() != nil {
		t.Error("a failed background should be skipped")
	}
}
