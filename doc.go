// Package easel is an interactive object-manipulation canvas for [Ebitengine].
//
// Easel provides the selection, dragging, scaling, rotating, and skewing
// layer that design tools, level editors, and card games need: a stack of
// objects, pointer routing with per-object hit testing, transform handles,
// a cancellable two-phase event stream, and scripted gestures for tests.
// Rendering stays in the host's hands; easel tells it what changed and where
// everything is.
//
// Full documentation, tutorials, and examples are available at:
//
// https://phanxgames.github.io/easel/
//
// # Quick start
//
// Implement [ebiten.Game] yourself, call [Canvas.Update] each tick, and
// bracket your draw pass with [Canvas.Render]:
//
//	type Game struct{ canvas *easel.Canvas }
//
//	func (g *Game) Update() error { g.canvas.Update(); return nil }
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.canvas.Render(func() { drawObjects(screen, g.canvas) })
//	}
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Objects
//
// Every manipulable element is an [Object]. Objects live in a flat canvas
// stack drawn bottom to top; each can carry children that inherit its
// transform and opacity. Create them with [NewObject], [NewGroup], or
// [NewText], then add them with [Canvas.Add]:
//
//	box := easel.NewObject("box", 120, 80)
//	box.X, box.Y = 200, 150
//	canvas.Add(box)
//
// Clicking an object selects it and shows its transform handles; dragging a
// handle scales, rotates, or skews it. Plain body drags move it. All of that
// works out of the box for any object with Selectable and Movable set.
//
// # Events
//
// Every interaction fires a before/after event pair. Before-phase listeners
// can call [Event.PreventDefault] to veto the interaction:
//
//	box.OnBefore(easel.EventDown, func(ev *easel.Event) {
//		if locked {
//			ev.PreventDefault()
//		}
//	})
//	box.On(easel.EventModified, func(ev *easel.Event) {
//		save(box)
//	})
//
// # Key features
//
// Easel includes multi-select with rubber-band boxes, drag and drop with
// payloads, inline text editing, zoom/pan viewports, property reactors,
// Kage shader filters, animation helpers (via [gween]), and JSON gesture
// scripts for replayable interaction tests.
//
// See the full docs for guides on each feature:
// https://phanxgames.github.io/easel/
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package easel
