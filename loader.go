package stampboard

import (
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"
	_ "golang.org/x/image/webp"
)

const (
	defaultLoaderConcurrency = 4
	loaderResultBuffer       = 64
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

type loadResult struct {
	key   string
	url   string
	img   image.Image
	bytes int64
	err   error
}

// TextureLoader fetches and decodes images on worker goroutines. Decoded
// images are handed back over a channel and turned into textures by Poll on
// the update thread, since GPU images may only be created there.
type TextureLoader struct {
	assets fs.FS
	client *http.Client

	ctx     context.Context
	cancel  context.CancelFunc
	swg     sizedwaitgroup.SizedWaitGroup
	wg      sync.WaitGroup
	results chan loadResult

	pending int
	closed  bool

	started time.Time
	loaded  int
	failed  int
	bytes   int64

	// makeTexture converts a decoded image. Replaced in tests to avoid the GPU.
	makeTexture func(image.Image) *Texture
}

// NewTextureLoader creates a loader reading relative urls from assets and
// absolute http(s) urls over the network. At most concurrency fetches run at
// once.
func NewTextureLoader(assets fs.FS, concurrency int) *TextureLoader {
	if concurrency <= 0 {
		concurrency = defaultLoaderConcurrency
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &TextureLoader{
		assets:      assets,
		client:      &http.Client{Timeout: 30 * time.Second},
		ctx:         ctx,
		cancel:      cancel,
		swg:         sizedwaitgroup.New(concurrency),
		results:     make(chan loadResult, loaderResultBuffer),
		makeTexture: newTextureFromImage,
	}
}

// Load starts fetching url. The result is reported under key by a later Poll.
func (l *TextureLoader) Load(key, url string) {
	if l.closed {
		return
	}
	if l.pending == 0 {
		l.started = time.Now()
		l.loaded, l.failed, l.bytes = 0, 0, 0
	}
	l.pending++
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.swg.AddWithContext(l.ctx); err != nil {
			return
		}
		defer l.swg.Done()
		img, n, err := l.fetch(url)
		select {
		case l.results <- loadResult{key: key, url: url, img: img, bytes: n, err: err}:
		case <-l.ctx.Done():
		}
	}()
}

// Pending returns the number of loads not yet delivered by Poll.
func (l *TextureLoader) Pending() int {
	return l.pending
}

// Poll delivers every finished load without blocking. fn receives either a
// texture or an error. Returns the number of results delivered.
func (l *TextureLoader) Poll(fn func(key string, tex *Texture, err error)) int {
	if l.closed {
		return 0
	}
	n := 0
	for {
		select {
		case r := <-l.results:
			l.pending--
			n++
			l.deliver(r, fn)
		default:
			return n
		}
	}
}

func (l *TextureLoader) deliver(r loadResult, fn func(string, *Texture, error)) {
	if r.err != nil {
		l.failed++
		fn(r.key, nil, r.err)
	} else {
		l.loaded++
		l.bytes += r.bytes
		fn(r.key, l.makeTexture(r.img), nil)
	}
	if l.pending == 0 {
		logDebug("loaded %d textures (%s) in %s, %d failed",
			l.loaded, humanize.Bytes(uint64(l.bytes)),
			durafmt.Parse(time.Since(l.started)).LimitFirstN(2).Format(shortUnits), l.failed)
	}
}

// Wait blocks until every started fetch has finished or been abandoned.
func (l *TextureLoader) Wait() {
	l.wg.Wait()
}

// Close cancels outstanding fetches. Results that arrive afterwards are
// discarded.
func (l *TextureLoader) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.cancel()
	l.pending = 0
}

func (l *TextureLoader) fetch(url string) (image.Image, int64, error) {
	rc, err := l.open(url)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()
	cr := &countingReader{r: rc}
	img, _, err := image.Decode(cr)
	if err != nil {
		return nil, cr.n, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, cr.n, nil
}

func (l *TextureLoader) open(url string) (io.ReadCloser, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		req, err := http.NewRequestWithContext(l.ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
		}
		return resp.Body, nil
	}
	if l.assets == nil {
		return nil, fmt.Errorf("open %s: no asset directory", url)
	}
	name := strings.TrimPrefix(path.Clean("/"+url), "/")
	f, err := l.assets.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	return f, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
