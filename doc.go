// Package stampboard is a pannable board of draggable image stamps for
// [Ebitengine].
//
// A [Board] owns a fixed-size world (8000x6000 by default) viewed through a
// pan-only [Viewport], a layer of stamp sprites, and a screen-space overlay
// that hosts the [Modal] viewer. Stamps grow slightly on hover, pulse when
// pressed, follow the pointer while dragged, and fly to the center of the
// screen when clicked. Pressing the backdrop or Escape flies them back.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a resizable window
// and game loop for you:
//
//	cfg := stampboard.DefaultConfig()
//	cfg.Stamps = []stampboard.StampDescriptor{
//		{ID: "rose", URL: "stamps/1.png", X: 4000, Y: 3000, Scale: 0.3},
//	}
//	board := stampboard.NewBoard(cfg, os.DirFS("public"))
//	stampboard.Run(board, stampboard.RunConfig{Title: "Board", Width: 1280, Height: 800})
//
// The manifest subpackage loads the same configuration from YAML.
//
// # Scene graph
//
// Every visual element is a [Node]: a container, a sprite or a tiling
// sprite. Children inherit their parent's transform and alpha. Nodes carry
// per-node pointer callbacks ([Node.OnPointerDown] and friends); a handler
// calls [PointerEvent.StopPropagation] to keep the press from panning the
// viewport.
//
// # Animation
//
// Tweens are driven by [gween] through an [Animator] that the board advances
// every tick. Starting a tween on a node property takes that property away
// from any tween already animating it.
//
// # Events
//
// [Board.SetEventSink] receives stamp and modal events. The ecs module
// publishes them into a [Donburi] world.
//
// # Testing
//
// [Board.InjectClick], [Board.InjectDrag] and friends queue synthetic input
// that is consumed one event per tick, ahead of real input. [LoadScript]
// replays a JSON script of clicks, drags, key presses, resizes and
// screenshots.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package stampboard
