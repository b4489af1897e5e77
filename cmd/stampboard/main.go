// Command stampboard opens a pannable board of draggable image stamps.
//
// Without -manifest it looks for $STAMPBOARD_MANIFEST or ./stampboard.yaml,
// and falls back to a random demo board when neither lists any stamps.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/phanxgames/stampboard"
	"github.com/phanxgames/stampboard/manifest"
)

func main() {
	manifestPath := flag.String("manifest", "", "stamp manifest (YAML)")
	assetDir := flag.String("assets", "public", "directory for relative image urls")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 800, "window height")
	debug := flag.Bool("debug", false, "enable debug logging")
	showFPS := flag.Bool("fps", false, "show FPS overlay")
	scriptPath := flag.String("script", "", "JSON input script to replay")
	seed := flag.Int64("seed", 0, "demo board seed (0 = time based)")
	flag.Parse()

	stampboard.SetDebug(*debug)

	var (
		cfg  *manifest.Config
		path string
		err  error
	)
	if *manifestPath != "" {
		path = *manifestPath
		cfg, err = manifest.LoadFromPath(path)
	} else {
		cfg, path, err = manifest.Load()
	}
	if err != nil {
		log.Fatalf("load %s: %v", path, err)
	}
	if len(cfg.Stamps) == 0 {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		cfg.Random(manifest.DemoStampCount, rand.New(rand.NewSource(s)))
		log.Printf("no stamps configured, using demo board (seed %d)", s)
	}

	board := stampboard.NewBoard(cfg.Board(), os.DirFS(*assetDir))

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		runner, err := stampboard.LoadScript(data)
		if err != nil {
			log.Fatal(err)
		}
		board.SetScript(runner)
		board.ExitWhenScriptDone = true
	}

	if err := stampboard.Run(board, stampboard.RunConfig{
		Title:   "Stampboard",
		Width:   *width,
		Height:  *height,
		ShowFPS: *showFPS,
	}); err != nil {
		log.Fatal(err)
	}
}
